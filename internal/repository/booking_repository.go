package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-booking/internal/model"
)

// BookingRepo provides persistence for bookings and their per-seat
// reservation rows.  The seat_reservations table carries a unique key
// on (show_id, seat_code); the duplicate-key error raised when two
// transactions claim the same seat is the storage-level conflict
// signal the engine relies on.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// GetByID retrieves a booking by its primary key.  Returns
// ErrBookingNotFound when no row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, show_id, seat_code, booked_by, booking_time, status
	           FROM bookings WHERE id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&b.ID, &b.ShowID, &b.SeatCode, &b.BookedBy, &b.BookingTime, &b.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListConfirmedByShow returns all CONFIRMED bookings for a show,
// oldest first.  The occupancy resolver unions their seat codes.
func (r *BookingRepo) ListConfirmedByShow(ctx context.Context, showID uint64) ([]model.Booking, error) {
	const q = `SELECT id, show_id, seat_code, booked_by, booking_time, status
	           FROM bookings WHERE show_id = ? AND status = 'CONFIRMED'
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.ShowID, &b.SeatCode, &b.BookedBy, &b.BookingTime, &b.Status); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateTx inserts a booking within the scope of an existing
// transaction and populates the generated ID.  The caller must commit
// or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (show_id, seat_code, booked_by, booking_time, status)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.ShowID, b.SeatCode, b.BookedBy,
		b.BookingTime.UTC().Format("2006-01-02 15:04:05"), b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// CreateSeatReservationsTx inserts one seat_reservations row per seat
// in a single statement.  A duplicate-key error from the unique
// (show_id, seat_code) index means another booking already holds one
// of the seats; the caller translates that into a conflict.  Passing
// an empty slice has no effect and returns nil.
func (r *BookingRepo) CreateSeatReservationsTx(ctx context.Context, tx *sql.Tx, showID, bookingID uint64, seatIDs []string) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `INSERT INTO seat_reservations (show_id, seat_code, booking_id) VALUES `
	args := make([]interface{}, 0, len(seatIDs)*3)
	for i, id := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, showID, id, bookingID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// CancelTx marks a booking CANCELLED within the provided transaction.
// Returns ErrBookingNotFound when no confirmed booking matches.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE bookings SET status = 'CANCELLED' WHERE id = ? AND status = 'CONFIRMED'`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// DeleteSeatReservationsTx removes the per-seat reservation rows of a
// booking, freeing the seats for future bookings.
func (r *BookingRepo) DeleteSeatReservationsTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
	const q = `DELETE FROM seat_reservations WHERE booking_id = ?`
	_, err := tx.ExecContext(ctx, q, bookingID)
	return err
}
