package service

import (
	"errors"

	"github.com/twquant/taifexpulse/internal/domain/models"
)

// ErrNoTicks is returned when Aggregate is called on an empty tick set.
// Callers are expected to check for emptiness first and warn instead.
var ErrNoTicks = errors.New("no ticks to aggregate")

// Aggregate reduces a non-empty, file-ordered tick set to a single summary:
// open is the first tick's price, close the last tick's, high and low the
// maximum and minimum across all ticks. The contract identity is taken from
// the first tick.
//
// The result is deterministic for a fixed input order; file order corresponds
// to chronological trade sequence in TAIFEX daily files, which is what makes
// open/close meaningful.
func Aggregate(ticks []models.Tick) (models.Aggregate, error) {
	if len(ticks) == 0 {
		return models.Aggregate{}, ErrNoTicks
	}

	agg := models.Aggregate{
		ProductCode: ticks[0].ProductCode,
		ExpiryMonth: ticks[0].ExpiryMonth,
		Open:        ticks[0].Price,
		Close:       ticks[len(ticks)-1].Price,
		High:        ticks[0].Price,
		Low:         ticks[0].Price,
	}
	for _, t := range ticks[1:] {
		if t.Price > agg.High {
			agg.High = t.Price
		}
		if t.Price < agg.Low {
			agg.Low = t.Price
		}
	}

	return agg, nil
}
