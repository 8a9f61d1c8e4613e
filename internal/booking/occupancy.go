package booking

import (
	"context"
)

// ResolveOccupied computes the set of seat identifiers currently held
// by CONFIRMED bookings for a show.  Each booking's seat_code is
// decoded through the tolerant multi-format reader; a row that
// decodes to zero seats is an invariant violation that is logged and
// contributes nothing, so one corrupt historical record never blocks
// future bookings.
func (e *Engine) ResolveOccupied(ctx context.Context, showID uint64) (map[string]struct{}, error) {
	bookings, err := e.store.ListConfirmedBookings(ctx, showID)
	if err != nil {
		return nil, err
	}
	occupied := make(map[string]struct{})
	for _, b := range bookings {
		ids := DecodeSeatCode(b.SeatCode)
		if len(ids) == 0 {
			e.log.Warn("confirmed booking resolves to no seats",
				"booking_id", b.ID, "show_id", showID, "seat_code", b.SeatCode)
			continue
		}
		for _, id := range ids {
			occupied[id] = struct{}{}
		}
	}
	return occupied, nil
}
