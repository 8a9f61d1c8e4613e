package model

import (
	"fmt"
	"time"
)

// Show lifecycle states.  A show starts ACTIVE and is driven forward
// by the status machine; SHOW_DONE is terminal.
const (
	ShowActive    = "ACTIVE"
	ShowHouseFull = "HOUSE_FULL"
	ShowStarted   = "SHOW_STARTED"
	ShowDone      = "SHOW_DONE"
)

// Show represents a scheduled performance in the `shows` table.  Date
// and StartTime are stored as separate columns ("2006-01-02" and
// "15:04") and together define the show start instant in UTC.  Status
// is the only field the engine mutates; everything else is operator
// edited.
//
// Fields:
//  ID         – primary key identifier.
//  Title      – show title.
//  Date       – show date ("YYYY-MM-DD", UTC).
//  StartTime  – show start time of day ("HH:MM", UTC).
//  PriceCents – uniform list price per seat in cents.
//  LayoutID   – seating layout the show was created against.
//  Status     – lifecycle state (ACTIVE, HOUSE_FULL, SHOW_STARTED, SHOW_DONE).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Show struct {
	ID         uint64    // shows.id
	Title      string    // shows.title
	Date       string    // shows.date
	StartTime  string    // shows.time
	PriceCents uint32    // shows.price_cents
	LayoutID   uint64    // shows.layout_id
	Status     string    // shows.status
	CreatedAt  time.Time // shows.created_at
	UpdatedAt  time.Time // shows.updated_at
}

// StartsAt combines the Date and StartTime columns into a single UTC
// instant.  An error is returned when either column is malformed.
func (s *Show) StartsAt() (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", s.Date+" "+s.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("show %d: bad start timestamp: %w", s.ID, err)
	}
	return t.UTC(), nil
}
