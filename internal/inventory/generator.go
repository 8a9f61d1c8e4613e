// Package inventory expands a normalized layout into the full
// addressable seat universe for a show.
package inventory

import (
	"strconv"

	"github.com/iliyamo/venue-booking/internal/layout"
)

// Seat is one addressable seat in a show's inventory.  ID is the join
// key against booking records ("North-A-12"); DisplayName is the
// short label printed on tickets ("NA12").  Every seat in a show is
// priced uniformly at the show's list price; per-section pricing that
// exists in some legacy layouts is not honored.
type Seat struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Section     string `json:"section"`
	RowLetter   string `json:"row_letter"`
	SeatNumber  int    `json:"seat_number"`
	PriceCents  uint32 `json:"price_cents"`
}

// Generate expands a normalized layout into its seat universe at the
// given uniform price.  Row letters are positional: the first row of
// a section is A, the second B, and so on.  Seat numbers are 1-based
// within a row.
//
// The expansion is deterministic: the same layout and price always
// yield an identical slice, element for element.  Seat identifiers,
// not row or seat numbers, are the join key against booking records,
// so any instability here would orphan historical bookings.
func Generate(nl *layout.NormalizedLayout, priceCents uint32) []Seat {
	seats := make([]Seat, 0, nl.Capacity())
	for _, sec := range nl.Sections {
		initial := sectionInitial(sec.Name)
		for i, row := range sec.Rows {
			letter := string(rune('A' + i))
			for j := 1; j <= row.Seats; j++ {
				num := strconv.Itoa(j)
				seats = append(seats, Seat{
					ID:          sec.Name + "-" + letter + "-" + num,
					DisplayName: initial + letter + num,
					Section:     sec.Name,
					RowLetter:   letter,
					SeatNumber:  j,
					PriceCents:  priceCents,
				})
			}
		}
	}
	return seats
}

// sectionInitial returns the first character of the section name, or
// an empty string for an unnamed section.
func sectionInitial(name string) string {
	if name == "" {
		return ""
	}
	return string([]rune(name)[0])
}
