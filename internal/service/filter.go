// Package service holds the in-memory row operations of the pipeline:
// filtering ticks by contract, aggregating them to open/close/high/low,
// and resampling them into fixed-interval bars.
package service

import "github.com/twquant/taifexpulse/internal/domain/models"

// Filter returns the ticks matching the criteria, in their original order.
//
// Product code and expiry month are exact, case-sensitive matches. When the
// criteria carry a Start bound, a tick survives only if its (date, time) key
// is >= the bound — compared componentwise, date first, then time (see
// models.DayTime.Compare).
//
// Zero matches yield an empty, non-nil slice; emptiness is the caller's
// decision to report, not an error here.
func Filter(ticks []models.Tick, c models.FilterCriteria) []models.Tick {
	out := make([]models.Tick, 0)
	for _, t := range ticks {
		if c.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
