package booking

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
)

// memStore is an in-memory Store used by the engine tests.  Its
// CreateBooking enforces the same per-seat exclusivity the SQL store
// gets from the unique key on (show_id, seat_code): a second claim on
// a reserved seat fails with ErrSeatTaken and writes nothing.
type memStore struct {
	mu       sync.Mutex
	shows    map[uint64]*model.Show
	layouts  map[uint64]*model.Layout
	bookings map[uint64]*model.Booking
	tickets  map[uint64]*model.Ticket
	reserved map[uint64]map[string]uint64 // showID -> seatID -> bookingID

	nextBookingID uint64
	nextTicketID  uint64
	statusWrites  []string // "showID:status" in call order
}

func newMemStore() *memStore {
	return &memStore{
		shows:    make(map[uint64]*model.Show),
		layouts:  make(map[uint64]*model.Layout),
		bookings: make(map[uint64]*model.Booking),
		tickets:  make(map[uint64]*model.Ticket),
		reserved: make(map[uint64]map[string]uint64),
	}
}

func (m *memStore) GetShow(_ context.Context, showID uint64) (*model.Show, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shows[showID]
	if !ok {
		return nil, ErrShowNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) ListShows(_ context.Context, filter ShowFilter) ([]model.Show, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Show
	for _, s := range m.shows {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Date != "" && s.Date != filter.Date {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateShowStatus(_ context.Context, showID uint64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shows[showID]
	if !ok {
		return ErrShowNotFound
	}
	s.Status = status
	m.statusWrites = append(m.statusWrites, strconv.FormatUint(showID, 10)+":"+status)
	return nil
}

func (m *memStore) GetLayout(_ context.Context, layoutID uint64) (*model.Layout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.layouts[layoutID]
	if !ok {
		return nil, ErrLayoutNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) ListConfirmedBookings(_ context.Context, showID uint64) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Booking
	for _, b := range m.bookings {
		if b.ShowID == showID && b.Status == model.BookingConfirmed {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetBooking(_ context.Context, bookingID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) CreateBooking(_ context.Context, b *model.Booking, tickets []model.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := m.reserved[b.ShowID]
	if res == nil {
		res = make(map[string]uint64)
		m.reserved[b.ShowID] = res
	}
	for _, t := range tickets {
		if _, taken := res[t.SeatCode]; taken {
			return ErrSeatTaken
		}
	}
	m.nextBookingID++
	b.ID = m.nextBookingID
	cp := *b
	m.bookings[b.ID] = &cp
	for i := range tickets {
		m.nextTicketID++
		tickets[i].ID = m.nextTicketID
		tickets[i].BookingID = b.ID
		tc := tickets[i]
		m.tickets[tc.ID] = &tc
		res[tc.SeatCode] = b.ID
	}
	return nil
}

func (m *memStore) CancelBooking(_ context.Context, bookingID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = model.BookingCancelled
	for _, t := range m.tickets {
		if t.BookingID == bookingID {
			t.Status = model.TicketRevoked
		}
	}
	for seat, owner := range m.reserved[b.ShowID] {
		if owner == bookingID {
			delete(m.reserved[b.ShowID], seat)
		}
	}
	return nil
}

func (m *memStore) CompleteTickets(_ context.Context, showID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tickets {
		if t.ShowID == showID && t.Status == model.TicketActive {
			t.Status = model.TicketCompleted
		}
	}
	return nil
}

// seedBooking inserts a confirmed booking row directly, bypassing the
// engine, the way historical rows entered the table.
func (m *memStore) seedBooking(showID uint64, seatCode string, seatIDs ...string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextBookingID++
	id := m.nextBookingID
	m.bookings[id] = &model.Booking{
		ID: id, ShowID: showID, SeatCode: seatCode,
		BookedBy: "seed", Status: model.BookingConfirmed,
	}
	res := m.reserved[showID]
	if res == nil {
		res = make(map[string]uint64)
		m.reserved[showID] = res
	}
	for _, sid := range seatIDs {
		res[sid] = id
	}
	return id
}

// fakePub records published events.
type fakePub struct {
	confirmed []queue.BookingConfirmedEvent
	cancelled []queue.BookingCancelledEvent
}

func (p *fakePub) BookingConfirmed(_ context.Context, ev queue.BookingConfirmedEvent) error {
	p.confirmed = append(p.confirmed, ev)
	return nil
}

func (p *fakePub) BookingCancelled(_ context.Context, ev queue.BookingCancelledEvent) error {
	p.cancelled = append(p.cancelled, ev)
	return nil
}

// quadLayout is a single North section with two rows of two seats:
// North-A-1, North-A-2, North-B-1, North-B-2.
const quadLayout = `{"sections":[{"name":"North","rows":[{"rowNumber":1,"seats":2},{"rowNumber":2,"seats":2}]}]}`

// seedShow installs a layout and an ACTIVE show over it, returning the
// show ID.
func seedShow(m *memStore, date, startTime, structure string) uint64 {
	layoutID := uint64(len(m.layouts) + 1)
	m.layouts[layoutID] = &model.Layout{ID: layoutID, Name: "main hall", StructureJSON: structure}
	showID := uint64(len(m.shows) + 1)
	m.shows[showID] = &model.Show{
		ID: showID, Title: "Evening Show", Date: date, StartTime: startTime,
		PriceCents: 1500, LayoutID: layoutID, Status: model.ShowActive,
	}
	return showID
}

func newTestEngine(store Store, pub Publisher, now time.Time) *Engine {
	e := New(store, pub, nil)
	e.now = func() time.Time { return now }
	return e
}

var testClock = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestBookCreatesBookingAndTickets(t *testing.T) {
	store := newMemStore()
	pub := &fakePub{}
	showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
	e := newTestEngine(store, pub, testClock)

	b, err := e.Book(context.Background(), showID, []string{"North-A-1", "North-A-2"}, "Asha Rao")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if b.ID == 0 || b.Status != model.BookingConfirmed {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if got := DecodeSeatCode(b.SeatCode); !reflect.DeepEqual(got, []string{"North-A-1", "North-A-2"}) {
		t.Fatalf("seat_code decodes to %v", got)
	}
	if !b.BookingTime.Equal(testClock) {
		t.Fatalf("booking time = %v, want %v", b.BookingTime, testClock)
	}

	codes := make(map[string]bool)
	var count int
	for _, tk := range store.tickets {
		if tk.BookingID != b.ID {
			continue
		}
		count++
		if tk.Status != model.TicketActive || tk.ShowID != showID || tk.PriceCents != 1500 {
			t.Fatalf("unexpected ticket: %+v", tk)
		}
		if tk.TicketCode == "" || codes[tk.TicketCode] {
			t.Fatalf("ticket code missing or duplicated: %+v", tk)
		}
		codes[tk.TicketCode] = true
	}
	if count != 2 {
		t.Fatalf("got %d tickets, want 2", count)
	}

	if len(pub.confirmed) != 1 {
		t.Fatalf("got %d confirmed events, want 1", len(pub.confirmed))
	}
	ev := pub.confirmed[0]
	if ev.BookingID != b.ID || ev.TotalCents != 3000 || len(ev.SeatIDs) != 2 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestBookValidation(t *testing.T) {
	store := newMemStore()
	showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
	e := newTestEngine(store, nil, testClock)
	ctx := context.Background()

	var ve *ValidationError
	if _, err := e.Book(ctx, showID, nil, "Asha"); !errors.As(err, &ve) {
		t.Fatalf("empty seat list: got %v, want ValidationError", err)
	}
	if _, err := e.Book(ctx, showID, []string{"North-A-1"}, "   "); !errors.As(err, &ve) {
		t.Fatalf("blank booked_by: got %v, want ValidationError", err)
	}
	if _, err := e.Book(ctx, showID, []string{"North-Z-9"}, "Asha"); !errors.As(err, &ve) {
		t.Fatalf("unknown seat: got %v, want ValidationError", err)
	}
	if _, err := e.Book(ctx, 999, []string{"North-A-1"}, "Asha"); !errors.Is(err, ErrShowNotFound) {
		t.Fatalf("unknown show: got %v, want ErrShowNotFound", err)
	}
	if len(store.bookings) != 0 {
		t.Fatalf("rejected requests wrote %d bookings", len(store.bookings))
	}
}

func TestBookRejectsNonActiveShow(t *testing.T) {
	for _, status := range []string{model.ShowHouseFull, model.ShowStarted, model.ShowDone} {
		store := newMemStore()
		showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
		store.shows[showID].Status = status
		e := newTestEngine(store, nil, testClock)

		var ve *ValidationError
		if _, err := e.Book(context.Background(), showID, []string{"North-A-1"}, "Asha"); !errors.As(err, &ve) {
			t.Fatalf("status %s: got %v, want ValidationError", status, err)
		}
	}
}

func TestBookConflictListsExactSeats(t *testing.T) {
	store := newMemStore()
	showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
	store.seedBooking(showID, `["North-A-1","North-A-2"]`, "North-A-1", "North-A-2")
	e := newTestEngine(store, nil, testClock)

	_, err := e.Book(context.Background(), showID, []string{"North-B-1", "North-A-2", "North-A-1"}, "Asha")
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if !reflect.DeepEqual(ce.ConflictingSeats, []string{"North-A-1", "North-A-2"}) {
		t.Fatalf("conflicting seats = %v", ce.ConflictingSeats)
	}
	if len(store.bookings) != 1 {
		t.Fatal("conflicting request wrote a booking")
	}
}

func TestBookConstraintBackstop(t *testing.T) {
	store := newMemStore()
	showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
	// A reservation row with no confirmed booking behind it: invisible
	// to the occupancy pre-check, so only the storage constraint can
	// reject the insert.  This is the shape of a lost race with a
	// concurrent writer.
	store.reserved[showID] = map[string]uint64{"North-B-2": 42}
	e := newTestEngine(store, nil, testClock)

	_, err := e.Book(context.Background(), showID, []string{"North-B-2"}, "Asha")
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if !reflect.DeepEqual(ce.ConflictingSeats, []string{"North-B-2"}) {
		t.Fatalf("conflicting seats = %v", ce.ConflictingSeats)
	}
}

func TestBookDeduplicatesSeats(t *testing.T) {
	store := newMemStore()
	showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
	e := newTestEngine(store, nil, testClock)

	b, err := e.Book(context.Background(), showID, []string{"North-A-1", " North-A-1 ", "North-A-1"}, "Asha")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if got := DecodeSeatCode(b.SeatCode); !reflect.DeepEqual(got, []string{"North-A-1"}) {
		t.Fatalf("seat_code decodes to %v", got)
	}
}

func TestCancelBookingFreesSeats(t *testing.T) {
	store := newMemStore()
	pub := &fakePub{}
	showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
	e := newTestEngine(store, pub, testClock)
	ctx := context.Background()

	b, err := e.Book(ctx, showID, []string{"North-A-1", "North-A-2"}, "Asha")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if err := e.CancelBooking(ctx, b.ID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}

	if store.bookings[b.ID].Status != model.BookingCancelled {
		t.Fatal("booking not marked CANCELLED")
	}
	for _, tk := range store.tickets {
		if tk.BookingID == b.ID && tk.Status != model.TicketRevoked {
			t.Fatalf("ticket not revoked: %+v", tk)
		}
	}
	if len(pub.cancelled) != 1 || pub.cancelled[0].BookingID != b.ID {
		t.Fatalf("cancelled events: %+v", pub.cancelled)
	}

	// The seats must be bookable again.
	if _, err := e.Book(ctx, showID, []string{"North-A-1", "North-A-2"}, "Binh"); err != nil {
		t.Fatalf("rebooking freed seats: %v", err)
	}
}

func TestCancelBookingErrors(t *testing.T) {
	store := newMemStore()
	showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
	e := newTestEngine(store, nil, testClock)
	ctx := context.Background()

	if err := e.CancelBooking(ctx, 404); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("unknown booking: got %v", err)
	}

	b, err := e.Book(ctx, showID, []string{"North-A-1"}, "Asha")
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if err := e.CancelBooking(ctx, b.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := e.CancelBooking(ctx, b.ID); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("second cancel: got %v, want ErrAlreadyCancelled", err)
	}
}

func TestListAvailableSeats(t *testing.T) {
	store := newMemStore()
	showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
	store.seedBooking(showID, `["North-A-2"]`, "North-A-2")
	e := newTestEngine(store, nil, testClock)

	seats, err := e.ListAvailableSeats(context.Background(), showID)
	if err != nil {
		t.Fatalf("ListAvailableSeats: %v", err)
	}
	if len(seats) != 4 {
		t.Fatalf("got %d seats, want 4", len(seats))
	}
	occupied := make(map[string]bool)
	for _, s := range seats {
		occupied[s.ID] = s.Occupied
	}
	want := map[string]bool{
		"North-A-1": false, "North-A-2": true,
		"North-B-1": false, "North-B-2": false,
	}
	if !reflect.DeepEqual(occupied, want) {
		t.Fatalf("occupancy = %v, want %v", occupied, want)
	}
}

func TestResolveOccupiedMixedEncodings(t *testing.T) {
	store := newMemStore()
	showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
	store.seedBooking(showID, `["North-A-1","North-A-2"]`) // current format
	store.seedBooking(showID, "North-B-1,North-B-2")       // comma format
	store.seedBooking(showID, "South-C-5")                 // bare format
	store.seedBooking(showID, "")                          // corrupt row, must be skipped
	e := newTestEngine(store, nil, testClock)

	occupied, err := e.ResolveOccupied(context.Background(), showID)
	if err != nil {
		t.Fatalf("ResolveOccupied: %v", err)
	}
	want := []string{"North-A-1", "North-A-2", "North-B-1", "North-B-2", "South-C-5"}
	if len(occupied) != len(want) {
		t.Fatalf("got %d occupied seats, want %d: %v", len(occupied), len(want), occupied)
	}
	for _, id := range want {
		if _, ok := occupied[id]; !ok {
			t.Fatalf("seat %s missing from occupancy", id)
		}
	}
}

func TestCancelledBookingsDoNotOccupy(t *testing.T) {
	store := newMemStore()
	showID := seedShow(store, "2026-05-01", "19:00", quadLayout)
	id := store.seedBooking(showID, `["North-A-1"]`, "North-A-1")
	e := newTestEngine(store, nil, testClock)
	ctx := context.Background()

	if err := e.CancelBooking(ctx, id); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	occupied, err := e.ResolveOccupied(ctx, showID)
	if err != nil {
		t.Fatalf("ResolveOccupied: %v", err)
	}
	if len(occupied) != 0 {
		t.Fatalf("cancelled booking still occupies: %v", occupied)
	}
}
