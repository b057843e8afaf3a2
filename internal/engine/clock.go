package engine

import (
	"fmt"
	"time"
	// Embed the tz database so the civil-time cutoff resolves on hosts
	// without a system zoneinfo dir.
	_ "time/tzdata"
)

// BoundaryClock resolves the canonical daily reset instant: a fixed
// wall-clock hour in a named timezone. The cutoff is computed per calendar
// day through the zone database, so it stays correct across DST transitions.
type BoundaryClock struct {
	loc        *time.Location
	cutoffHour int
}

func NewBoundaryClock(zone string, cutoffHour int) (*BoundaryClock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", zone, err)
	}
	return &BoundaryClock{loc: loc, cutoffHour: cutoffHour}, nil
}

// CutoffFor returns the reset instant for the calendar day of now in the
// clock's zone.
func (c *BoundaryClock) CutoffFor(now time.Time) time.Time {
	local := now.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), c.cutoffHour, 0, 0, 0, c.loc)
}

// NextCutoff returns the first reset instant strictly after now.
func (c *BoundaryClock) NextCutoff(now time.Time) time.Time {
	cutoff := c.CutoffFor(now)
	if now.Before(cutoff) {
		return cutoff
	}
	local := now.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, c.cutoffHour, 0, 0, 0, c.loc)
}

// HasCrossedBoundary reports whether a reset boundary lies between last and
// now: now has reached today's cutoff and last precedes it. Checking is
// idempotent; callers must persist a fresh checkpoint as soon as they act on
// a true result.
func (c *BoundaryClock) HasCrossedBoundary(last, now time.Time) bool {
	cutoff := c.CutoffFor(now)
	return !now.Before(cutoff) && last.Before(cutoff)
}
