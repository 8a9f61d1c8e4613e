package model

import "time"

// Ticket states.  ACTIVE tickets become COMPLETED when the owning
// show reaches SHOW_DONE, and REVOKED when the owning booking is
// cancelled.
const (
	TicketActive    = "ACTIVE"
	TicketCompleted = "COMPLETED"
	TicketRevoked   = "REVOKED"
)

// Ticket represents one admission ticket in the `tickets` table.
// Exactly one ticket exists per seat per confirmed booking and is
// created atomically with the booking row.
//
// Fields:
//  ID         – primary key identifier.
//  BookingID  – owning booking.
//  ShowID     – show this ticket admits to.
//  SeatCode   – single seat identifier (e.g. "North-A-12").
//  TicketCode – unique code printed on the ticket.
//  PriceCents – price paid for the seat in cents.
//  Status     – ACTIVE, COMPLETED or REVOKED.
//  CreatedAt  – creation timestamp.
type Ticket struct {
	ID         uint64    // tickets.id
	BookingID  uint64    // tickets.booking_id
	ShowID     uint64    // tickets.show_id
	SeatCode   string    // tickets.seat_code
	TicketCode string    // tickets.ticket_code
	PriceCents uint32    // tickets.price_cents
	Status     string    // tickets.status
	CreatedAt  time.Time // tickets.created_at
}
