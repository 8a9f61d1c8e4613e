package booking

import (
	"context"
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

// GracePeriod is how long after its scheduled start a show counts as
// "started" rather than "done".
const GracePeriod = 30 * time.Minute

// evaluateShow derives the show's lifecycle state from the clock and
// occupancy and persists at most one transition.  The show's Status
// field is updated in place so callers return the reconciled value.
//
// Precedence, given start and graceEnd = start + GracePeriod:
//
//  1. now > graceEnd                  -> SHOW_DONE, tickets completed
//  2. start < now <= graceEnd, ACTIVE -> SHOW_STARTED
//  3. now > start, HOUSE_FULL         -> SHOW_DONE, tickets completed
//  4. ACTIVE and occupancy >= capacity -> HOUSE_FULL
//
// "Done" must win over "house full" and "started" once the grace
// window has elapsed so that ticket completion bookkeeping eventually
// runs no matter how the show got there.  A house-full show that
// reaches its start time is done immediately (rule 3): no further
// seat activity is possible, so the grace window serves no purpose.
func (e *Engine) evaluateShow(ctx context.Context, s *model.Show, now time.Time) error {
	if s.Status == model.ShowDone {
		return nil
	}
	start, err := s.StartsAt()
	if err != nil {
		return err
	}
	graceEnd := start.Add(GracePeriod)

	switch {
	case now.After(graceEnd):
		return e.finishShow(ctx, s)
	case now.After(start) && s.Status == model.ShowActive:
		return e.transition(ctx, s, model.ShowStarted)
	case now.After(start) && s.Status == model.ShowHouseFull:
		return e.finishShow(ctx, s)
	case s.Status == model.ShowActive:
		occupied, err := e.ResolveOccupied(ctx, s.ID)
		if err != nil {
			return err
		}
		universe, err := e.seatUniverse(ctx, s)
		if err != nil {
			return err
		}
		// An empty layout never counts as house full.
		if len(universe) > 0 && len(occupied) >= len(universe) {
			return e.transition(ctx, s, model.ShowHouseFull)
		}
	}
	return nil
}

// finishShow moves a show to its terminal state and completes its
// remaining ACTIVE tickets.
func (e *Engine) finishShow(ctx context.Context, s *model.Show) error {
	if err := e.transition(ctx, s, model.ShowDone); err != nil {
		return err
	}
	return e.store.CompleteTickets(ctx, s.ID)
}

func (e *Engine) transition(ctx context.Context, s *model.Show, status string) error {
	if err := e.store.UpdateShowStatus(ctx, s.ID, status); err != nil {
		return err
	}
	from := s.Status
	s.Status = status
	e.log.Info("show transition", "show_id", s.ID, "from", from, "to", status)
	return nil
}
