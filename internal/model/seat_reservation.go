package model

import "time"

// SeatReservation is one row per seat per confirmed booking in the
// `seat_reservations` table.  The table carries a unique key on
// (show_id, seat_code) so that seat exclusivity is enforced by the
// storage layer rather than only by the application-level conflict
// check.  Rows are deleted when the owning booking is cancelled,
// which frees the seats for rebooking.
//
// Fields:
//  ID        – primary key identifier.
//  ShowID    – show the seat is claimed for.
//  SeatCode  – single seat identifier.
//  BookingID – booking that claimed the seat.
//  CreatedAt – creation timestamp.
type SeatReservation struct {
	ID        uint64    // seat_reservations.id
	ShowID    uint64    // seat_reservations.show_id
	SeatCode  string    // seat_reservations.seat_code
	BookingID uint64    // seat_reservations.booking_id
	CreatedAt time.Time // seat_reservations.created_at
}
