package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/venue-booking/internal/inventory"
	"github.com/iliyamo/venue-booking/internal/layout"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
)

// Engine composes the layout model, inventory generator, occupancy
// resolver, booking transaction and status machine behind four
// operations (ListAvailableSeats, Book, ListShows, CancelBooking).
// It holds no mutable state of its own; the store is the only shared
// resource.
type Engine struct {
	store Store
	pub   Publisher // optional; nil disables event publishing
	log   *slog.Logger
	now   func() time.Time
}

// New constructs an Engine.  pub may be nil when no broker is
// configured; log may be nil, in which case engine logs are dropped.
func New(store Store, pub Publisher, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		store: store,
		pub:   pub,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SeatAvailability pairs one seat of the universe with its occupancy
// flag.
type SeatAvailability struct {
	inventory.Seat
	Occupied bool `json:"occupied"`
}

// seatUniverse loads a show's layout and expands it into the full
// seat list at the show's uniform price.
func (e *Engine) seatUniverse(ctx context.Context, show *model.Show) ([]inventory.Seat, error) {
	rec, err := e.store.GetLayout(ctx, show.LayoutID)
	if err != nil {
		return nil, err
	}
	parsed, err := layout.ParseStructure(rec.StructureJSON)
	if err != nil {
		return nil, err
	}
	nl := layout.Normalize(parsed)
	if err := nl.Validate(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	return inventory.Generate(nl, show.PriceCents), nil
}

// ListAvailableSeats returns the complete seat universe of a show
// with each seat's occupancy flag.  The universe is derived from the
// layout and the occupancy from a fresh read of confirmed bookings;
// nothing is cached.
func (e *Engine) ListAvailableSeats(ctx context.Context, showID uint64) ([]SeatAvailability, error) {
	show, err := e.store.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	universe, err := e.seatUniverse(ctx, show)
	if err != nil {
		return nil, err
	}
	occupied, err := e.ResolveOccupied(ctx, showID)
	if err != nil {
		return nil, err
	}
	out := make([]SeatAvailability, 0, len(universe))
	for _, s := range universe {
		_, occ := occupied[s.ID]
		out = append(out, SeatAvailability{Seat: s, Occupied: occ})
	}
	return out, nil
}

// Book validates a seat selection against fresh occupancy and commits
// a booking plus one ticket per seat.  The occupancy snapshot shown
// during seat selection is never trusted: the check runs again here,
// immediately before the insert, and the storage-level unique key
// backstops the remaining check-then-act window between concurrent
// callers.  On conflict the returned ConflictError lists exactly the
// contested seats and no write is performed.
func (e *Engine) Book(ctx context.Context, showID uint64, seatIDs []string, bookedBy string) (*model.Booking, error) {
	bookedBy = strings.TrimSpace(bookedBy)
	if bookedBy == "" {
		return nil, &ValidationError{Reason: "booked_by is required"}
	}
	requested := dedupe(seatIDs)
	if len(requested) == 0 {
		return nil, &ValidationError{Reason: "at least one seat is required"}
	}
	show, err := e.store.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	if show.Status != model.ShowActive {
		return nil, &ValidationError{Reason: "show is not open for booking (" + show.Status + ")"}
	}
	universe, err := e.seatUniverse(ctx, show)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(universe))
	for _, s := range universe {
		known[s.ID] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := known[id]; !ok {
			return nil, &ValidationError{Reason: "unknown seat " + id}
		}
	}

	// Fresh occupancy read immediately before the insert.
	occupied, err := e.ResolveOccupied(ctx, showID)
	if err != nil {
		return nil, err
	}
	if conflicts := intersect(requested, occupied); len(conflicts) > 0 {
		return nil, &ConflictError{ConflictingSeats: conflicts}
	}

	seatCode, err := EncodeSeatCode(requested)
	if err != nil {
		return nil, err
	}
	b := &model.Booking{
		ShowID:      showID,
		SeatCode:    seatCode,
		BookedBy:    bookedBy,
		BookingTime: e.now(),
		Status:      model.BookingConfirmed,
	}
	tickets := make([]model.Ticket, 0, len(requested))
	for _, id := range requested {
		tickets = append(tickets, model.Ticket{
			ShowID:     showID,
			SeatCode:   id,
			TicketCode: uuid.NewString(),
			PriceCents: show.PriceCents,
			Status:     model.TicketActive,
		})
	}
	if err := e.store.CreateBooking(ctx, b, tickets); err != nil {
		if errors.Is(err, ErrSeatTaken) {
			// A concurrent writer won the race after our check.  Re-read
			// occupancy so the conflict list reflects what actually blocked
			// the insert.
			fresh, rerr := e.ResolveOccupied(ctx, showID)
			if rerr != nil {
				return nil, &ConflictError{ConflictingSeats: requested}
			}
			conflicts := intersect(requested, fresh)
			if len(conflicts) == 0 {
				conflicts = requested
			}
			return nil, &ConflictError{ConflictingSeats: conflicts}
		}
		return nil, err
	}

	if e.pub != nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:   b.ID,
			ShowID:      showID,
			ShowTitle:   show.Title,
			BookedBy:    bookedBy,
			SeatIDs:     requested,
			TotalCents:  show.PriceCents * uint32(len(requested)),
			ConfirmedAt: b.BookingTime.Format(time.RFC3339),
		}
		if err := e.pub.BookingConfirmed(ctx, ev); err != nil {
			e.log.Warn("publish booking.confirmed failed", "booking_id", b.ID, "err", err)
		}
	}
	return b, nil
}

// ListShows returns shows matching the filter after reconciling each
// one through the status machine.  Reconciliation is read-triggered
// only: a deployment that never lists shows never advances them.
// That staleness bound is a documented property of the design, not a
// defect.
func (e *Engine) ListShows(ctx context.Context, filter ShowFilter) ([]model.Show, error) {
	shows, err := e.store.ListShows(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := e.now()
	for i := range shows {
		// Per-show isolation: one bad record must not stop the rest of
		// the batch.
		if err := e.evaluateShow(ctx, &shows[i], now); err != nil {
			e.log.Error("show reconciliation failed", "show_id", shows[i].ID, "err", err)
		}
	}
	return shows, nil
}

// CancelBooking marks a booking CANCELLED, revokes its tickets and
// frees its seats for future occupancy resolution.
func (e *Engine) CancelBooking(ctx context.Context, bookingID uint64) error {
	b, err := e.store.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status == model.BookingCancelled {
		return ErrAlreadyCancelled
	}
	if err := e.store.CancelBooking(ctx, bookingID); err != nil {
		return err
	}
	if e.pub != nil {
		ev := queue.BookingCancelledEvent{
			BookingID:   bookingID,
			ShowID:      b.ShowID,
			SeatIDs:     DecodeSeatCode(b.SeatCode),
			CancelledAt: e.now().Format(time.RFC3339),
		}
		if err := e.pub.BookingCancelled(ctx, ev); err != nil {
			e.log.Warn("publish booking.cancelled failed", "booking_id", bookingID, "err", err)
		}
	}
	return nil
}

// dedupe removes blank and duplicate identifiers while preserving the
// caller's order.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// intersect returns the requested identifiers present in the occupied
// set, sorted for deterministic error messages.
func intersect(requested []string, occupied map[string]struct{}) []string {
	var out []string
	for _, id := range requested {
		if _, ok := occupied[id]; ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
