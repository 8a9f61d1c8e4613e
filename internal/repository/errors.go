// Package repository contains data access for the venue booking
// engine.  Repositories hold a *sql.DB, expose plain methods for
// single round trips and ...Tx variants that participate in a caller
// managed transaction.  Sentinel errors defined here let higher
// layers distinguish failure scenarios without inspecting driver
// errors.
package repository

import "errors"

// ErrLayoutNotFound is returned when a layout lookup yields no rows.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrShowNotFound is returned when a show lookup yields no rows.
var ErrShowNotFound = errors.New("show not found")

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// ErrTicketNotFound is returned when a ticket lookup yields no rows.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrUserNotFound is returned when a user lookup yields no rows.
var ErrUserNotFound = errors.New("user not found")
