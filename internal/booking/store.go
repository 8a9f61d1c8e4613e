package booking

import (
	"context"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
)

// ShowFilter narrows ListShows.  Zero values mean "no filter".
type ShowFilter struct {
	Status string // exact lifecycle state
	Date   string // exact show date ("YYYY-MM-DD")
}

// Store is the engine's view of the persistent record store.  The
// SQL-backed implementation lives in the repository package; tests
// substitute an in-memory fake.  Every call is an I/O-bound round
// trip and must not be made while holding an in-process lock.
type Store interface {
	// GetShow returns a show by ID or ErrShowNotFound.
	GetShow(ctx context.Context, showID uint64) (*model.Show, error)
	// ListShows returns shows matching the filter, newest first.
	ListShows(ctx context.Context, filter ShowFilter) ([]model.Show, error)
	// UpdateShowStatus persists a lifecycle transition.
	UpdateShowStatus(ctx context.Context, showID uint64, status string) error
	// GetLayout returns a layout by ID or ErrLayoutNotFound.
	GetLayout(ctx context.Context, layoutID uint64) (*model.Layout, error)
	// ListConfirmedBookings returns every CONFIRMED booking for a show.
	ListConfirmedBookings(ctx context.Context, showID uint64) ([]model.Booking, error)
	// GetBooking returns a booking by ID or ErrBookingNotFound.
	GetBooking(ctx context.Context, bookingID uint64) (*model.Booking, error)
	// CreateBooking atomically persists the booking, one ticket per
	// seat, and one seat_reservations row per seat.  Either all rows
	// commit or none do.  When the unique key on (show_id, seat_code)
	// rejects a reservation row, the whole transaction rolls back and
	// ErrSeatTaken is returned.
	CreateBooking(ctx context.Context, b *model.Booking, tickets []model.Ticket) error
	// CancelBooking marks the booking CANCELLED, its tickets REVOKED,
	// and deletes its seat_reservations rows so the seats are free
	// again.  Returns ErrBookingNotFound for unknown IDs.
	CancelBooking(ctx context.Context, bookingID uint64) error
	// CompleteTickets bulk-transitions all ACTIVE tickets of a show to
	// COMPLETED.  Invoked when the show reaches SHOW_DONE.
	CompleteTickets(ctx context.Context, showID uint64) error
}

// Publisher emits domain events after successful writes.  Publish
// failures are logged and ignored; the booking itself has already
// committed.
type Publisher interface {
	BookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
	BookingCancelled(ctx context.Context, ev queue.BookingCancelledEvent) error
}
