// Package booking implements the seat inventory and booking engine:
// occupancy resolution across historical seat-code encodings, the
// conflict-checked booking transaction, and the show lifecycle state
// machine.  The package owns seat-to-booking assignment and
// Show.Status; no other component mutates them.
package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors forming the contract between the engine and its
// Store.  SQL-backed stores translate driver errors into these; the
// in-memory test store returns them directly.
var (
	// ErrShowNotFound is returned when a show lookup yields no row.
	ErrShowNotFound = errors.New("show not found")
	// ErrLayoutNotFound is returned when a layout lookup yields no row.
	ErrLayoutNotFound = errors.New("layout not found")
	// ErrBookingNotFound is returned when a booking lookup yields no row.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrSeatTaken is returned by Store.CreateBooking when the unique
	// key on (show_id, seat_code) rejects the insert.  It is the
	// storage-level conflict signal for concurrent writers that both
	// passed the application-level occupancy check.
	ErrSeatTaken = errors.New("seat already reserved")
	// ErrAlreadyCancelled is returned when cancelling a booking twice.
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)

// ValidationError rejects a malformed request before any write is
// attempted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// ConflictError reports that one or more requested seats are already
// occupied.  ConflictingSeats enumerates exactly which requested
// seats are unavailable so the caller can prompt a precise
// re-selection; it never reports just "booking failed".  The caller
// is expected to re-fetch availability and retry.
type ConflictError struct {
	ConflictingSeats []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.ConflictingSeats, ", "))
}
