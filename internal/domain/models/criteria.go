package models

import "time"

// DayTime is a composite (date, time-of-day) ordering key.
//
// Dates and times are compared as a pair — date first, then time. A full
// timestamp is never compared against a bare date; collapsing the pair into
// one value invites exactly the kind of implicit coercion this type exists
// to prevent.
type DayTime struct {
	Date time.Time // date part only (midnight)
	Time time.Time // clock part on the zero date
}

// Compare orders two keys: -1 when d < o, 0 when equal, +1 when d > o.
// The date component decides first; the time component breaks ties.
func (d DayTime) Compare(o DayTime) int {
	if c := compareDate(d.Date, o.Date); c != 0 {
		return c
	}
	return compareClock(d.Time, o.Time)
}

func compareDate(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	switch {
	case ay != by:
		return sign(ay - by)
	case am != bm:
		return sign(int(am) - int(bm))
	default:
		return sign(ad - bd)
	}
}

func compareClock(a, b time.Time) int {
	as := a.Hour()*3600 + a.Minute()*60 + a.Second()
	bs := b.Hour()*3600 + b.Minute()*60 + b.Second()
	return sign(as - bs)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// FilterCriteria selects ticks by exact product code and expiry month,
// optionally discarding everything before a Start lower bound.
//
// Invariant: Start is either nil or fully populated — a start date without a
// start time (or vice versa) is rejected before any file is read.
type FilterCriteria struct {
	ProductCode string
	ExpiryMonth string
	Start       *DayTime
}

// Matches reports whether the tick satisfies the criteria.
func (c FilterCriteria) Matches(t Tick) bool {
	if t.ProductCode != c.ProductCode || t.ExpiryMonth != c.ExpiryMonth {
		return false
	}
	if c.Start != nil && t.At().Compare(*c.Start) < 0 {
		return false
	}
	return true
}
