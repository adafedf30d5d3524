package service

import (
	"sort"
	"time"

	"github.com/twquant/taifexpulse/internal/domain/models"
)

// Resample buckets ticks into fixed-interval OHLC bars.
//
// Each tick lands in the bucket whose start is its combined timestamp
// truncated to the interval. Within a bucket, open/close follow input order
// and high/low are the extremes; volumes are summed. Bars come back in
// ascending bucket order. An empty input yields an empty slice.
func Resample(ticks []models.Tick, interval time.Duration) []models.Bar {
	buckets := make(map[time.Time]*models.Bar)

	for _, t := range ticks {
		start := t.Timestamp().Truncate(interval)
		b, ok := buckets[start]
		if !ok {
			buckets[start] = &models.Bar{
				Start:  start,
				Open:   t.Price,
				High:   t.Price,
				Low:    t.Price,
				Close:  t.Price,
				Volume: t.Volume,
			}
			continue
		}
		if t.Price > b.High {
			b.High = t.Price
		}
		if t.Price < b.Low {
			b.Low = t.Price
		}
		b.Close = t.Price
		b.Volume += t.Volume
	}

	bars := make([]models.Bar, 0, len(buckets))
	for _, b := range buckets {
		bars = append(bars, *b)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Start.Before(bars[j].Start) })

	return bars
}
