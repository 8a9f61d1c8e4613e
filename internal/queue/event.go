// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into activity
// log lines.
package queue

// BookingConfirmedEvent is published after a booking transaction
// commits.  It carries enough information for downstream consumers to
// write the activity log or notify without querying the primary
// database.
type BookingConfirmedEvent struct {
	BookingID   uint64   `json:"booking_id"`
	ShowID      uint64   `json:"show_id"`
	ShowTitle   string   `json:"show_title"`
	BookedBy    string   `json:"booked_by"`
	SeatIDs     []string `json:"seats"`
	TotalCents  uint32   `json:"total_cents"`
	ConfirmedAt string   `json:"confirmed_at"`
}

// BookingCancelledEvent is published after a booking is cancelled and
// its tickets revoked.
type BookingCancelledEvent struct {
	BookingID   uint64   `json:"booking_id"`
	ShowID      uint64   `json:"show_id"`
	SeatIDs     []string `json:"seats"`
	CancelledAt string   `json:"cancelled_at"`
}
