// Package etime provides the fixed Eastern-time reference used for all
// eligibility and staleness decisions, matching the league's scheduling
// convention.
package etime

import (
	"sync"
	"time"
	_ "time/tzdata"
)

const zoneName = "America/New_York"

var (
	locationOnce sync.Once
	location     *time.Location
)

// Location returns the Eastern time zone. tzdata is embedded so loading
// cannot fail on stripped-down containers.
func Location() *time.Location {
	locationOnce.Do(func() {
		loc, err := time.LoadLocation(zoneName)
		if err != nil {
			loc = time.FixedZone("ET", -5*60*60)
		}
		location = loc
	})
	return location
}

// Snapshot is one immutable "now" reference. A batch pass computes a single
// snapshot up front so every eligibility decision in the pass agrees.
type Snapshot struct {
	now time.Time
}

// Now captures the current Eastern time.
func Now() Snapshot {
	return At(time.Now())
}

// At fixes a snapshot to an arbitrary instant, converted to Eastern time.
func At(t time.Time) Snapshot {
	return Snapshot{now: t.In(Location())}
}

// Date returns the snapshot's calendar date at midnight Eastern.
func (s Snapshot) Date() time.Time {
	y, m, d := s.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Location())
}

// DateString returns the calendar date as YYYY-MM-DD.
func (s Snapshot) DateString() string {
	return s.now.Format("2006-01-02")
}

// TimeOfDay returns the wall clock as HH:MM, comparable lexically against
// stored game times.
func (s Snapshot) TimeOfDay() string {
	return s.now.Format("15:04")
}

// DaysAgo returns the calendar date n days before the snapshot's date.
func (s Snapshot) DaysAgo(n int) time.Time {
	return s.Date().AddDate(0, 0, -n)
}
