package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/venue-booking/internal/booking"
	"github.com/iliyamo/venue-booking/internal/model"
)

// mysqlDupEntry is the MySQL error number for a unique key violation.
const mysqlDupEntry = 1062

// Store adapts the individual repositories to the engine's
// booking.Store contract.  Multi-row writes run inside one
// transaction so a booking can never commit without its tickets and
// seat reservations, or vice versa.
type Store struct {
	db       *sql.DB
	Layouts  *LayoutRepo
	Shows    *ShowRepo
	Bookings *BookingRepo
	Tickets  *TicketRepo
}

// NewStore constructs a Store and its repositories over one DB handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		Layouts:  NewLayoutRepo(db),
		Shows:    NewShowRepo(db),
		Bookings: NewBookingRepo(db),
		Tickets:  NewTicketRepo(db),
	}
}

// GetShow implements booking.Store.
func (s *Store) GetShow(ctx context.Context, showID uint64) (*model.Show, error) {
	show, err := s.Shows.GetByID(ctx, showID)
	if errors.Is(err, ErrShowNotFound) {
		return nil, booking.ErrShowNotFound
	}
	return show, err
}

// ListShows implements booking.Store.
func (s *Store) ListShows(ctx context.Context, filter booking.ShowFilter) ([]model.Show, error) {
	return s.Shows.List(ctx, filter.Status, filter.Date)
}

// UpdateShowStatus implements booking.Store.
func (s *Store) UpdateShowStatus(ctx context.Context, showID uint64, status string) error {
	err := s.Shows.UpdateStatus(ctx, showID, status)
	if errors.Is(err, ErrShowNotFound) {
		return booking.ErrShowNotFound
	}
	return err
}

// GetLayout implements booking.Store.
func (s *Store) GetLayout(ctx context.Context, layoutID uint64) (*model.Layout, error) {
	l, err := s.Layouts.GetByID(ctx, layoutID)
	if errors.Is(err, ErrLayoutNotFound) {
		return nil, booking.ErrLayoutNotFound
	}
	return l, err
}

// ListConfirmedBookings implements booking.Store.
func (s *Store) ListConfirmedBookings(ctx context.Context, showID uint64) ([]model.Booking, error) {
	return s.Bookings.ListConfirmedByShow(ctx, showID)
}

// GetBooking implements booking.Store.
func (s *Store) GetBooking(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, ErrBookingNotFound) {
		return nil, booking.ErrBookingNotFound
	}
	return b, err
}

// CreateBooking implements booking.Store.  The booking row, its
// tickets and its per-seat reservation rows commit together or not at
// all.  A duplicate-key rejection from the (show_id, seat_code)
// unique index rolls everything back and surfaces as
// booking.ErrSeatTaken so the engine can report the conflict.
func (s *Store) CreateBooking(ctx context.Context, b *model.Booking, tickets []model.Ticket) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.Bookings.CreateTx(ctx, tx, b); err != nil {
		return err
	}
	seatIDs := make([]string, 0, len(tickets))
	for _, t := range tickets {
		seatIDs = append(seatIDs, t.SeatCode)
	}
	if err := s.Bookings.CreateSeatReservationsTx(ctx, tx, b.ShowID, b.ID, seatIDs); err != nil {
		if isDupEntry(err) {
			return booking.ErrSeatTaken
		}
		return err
	}
	for i := range tickets {
		tickets[i].BookingID = b.ID
	}
	if err := s.Tickets.CreateBulkTx(ctx, tx, tickets); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CancelBooking implements booking.Store.
func (s *Store) CancelBooking(ctx context.Context, bookingID uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.Bookings.CancelTx(ctx, tx, bookingID); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return booking.ErrBookingNotFound
		}
		return err
	}
	if err := s.Tickets.RevokeByBookingTx(ctx, tx, bookingID); err != nil {
		return err
	}
	if err := s.Bookings.DeleteSeatReservationsTx(ctx, tx, bookingID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CompleteTickets implements booking.Store.
func (s *Store) CompleteTickets(ctx context.Context, showID uint64) error {
	return s.Tickets.CompleteByShow(ctx, showID)
}

// isDupEntry reports whether err is a MySQL unique key violation.
func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDupEntry
}
