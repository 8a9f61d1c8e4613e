package model

import "time"

// Booking states.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking records one booking transaction in the `bookings` table.
// SeatCode stores the full set of seat identifiers taken in the
// transaction.  Historical rows use one of three encodings (JSON
// array, comma-joined, or a bare single identifier); new rows are
// always written in the JSON array form.  The booking package owns
// decoding.
//
// Fields:
//  ID          – primary key identifier.
//  ShowID      – show the seats were booked for.
//  SeatCode    – encoded set of seat identifiers.
//  BookedBy    – name of the customer the operator booked for.
//  BookingTime – when the booking was committed.
//  Status      – CONFIRMED or CANCELLED.
type Booking struct {
	ID          uint64    // bookings.id
	ShowID      uint64    // bookings.show_id
	SeatCode    string    // bookings.seat_code
	BookedBy    string    // bookings.booked_by
	BookingTime time.Time // bookings.booking_time
	Status      string    // bookings.status
}
