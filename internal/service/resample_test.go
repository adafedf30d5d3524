package service

import (
	"testing"
	"time"

	"github.com/twquant/taifexpulse/internal/domain/models"
)

func mkVolTick(day, hms string, price float64, vol int64) models.Tick {
	tk := mkTick(day, hms, "MTX", "202501", price)
	tk.Volume = vol
	return tk
}

func TestResample_MinuteBars(t *testing.T) {
	ticks := []models.Tick{
		mkVolTick("2025-01-02", "08:45:01", 100, 1),
		mkVolTick("2025-01-02", "08:45:30", 103, 2),
		mkVolTick("2025-01-02", "08:45:59", 101, 1),
		mkVolTick("2025-01-02", "08:47:00", 99, 5),
	}

	bars := Resample(ticks, time.Minute)

	if len(bars) != 2 {
		t.Fatalf("want 2 bars, got %d", len(bars))
	}

	first := bars[0]
	if !first.Start.Equal(time.Date(2025, 1, 2, 8, 45, 0, 0, time.UTC)) {
		t.Fatalf("bad first bucket start: %v", first.Start)
	}
	if first.Open != 100 || first.High != 103 || first.Low != 100 || first.Close != 101 {
		t.Fatalf("bad first bar: %+v", first)
	}
	if first.Volume != 4 {
		t.Fatalf("volume not summed: %+v", first)
	}

	second := bars[1]
	if !second.Start.Equal(time.Date(2025, 1, 2, 8, 47, 0, 0, time.UTC)) {
		t.Fatalf("bad second bucket start: %v", second.Start)
	}
	if second.Open != 99 || second.Close != 99 || second.Volume != 5 {
		t.Fatalf("bad second bar: %+v", second)
	}
}

func TestResample_AscendingAndInvariants(t *testing.T) {
	// ticks deliberately span buckets out of numeric price order
	ticks := []models.Tick{
		mkVolTick("2025-01-02", "09:02:10", 105, 1),
		mkVolTick("2025-01-02", "09:00:05", 100, 1),
		mkVolTick("2025-01-02", "09:01:30", 95, 1),
		mkVolTick("2025-01-02", "09:00:45", 102, 1),
	}

	bars := Resample(ticks, time.Minute)

	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Start.Before(bars[i].Start) {
			t.Fatalf("bars not in ascending bucket order: %v then %v", bars[i-1].Start, bars[i].Start)
		}
	}
	for _, b := range bars {
		if b.High < b.Open || b.High < b.Close || b.High < b.Low {
			t.Fatalf("bar high is not the maximum: %+v", b)
		}
		if b.Low > b.Open || b.Low > b.Close {
			t.Fatalf("bar low is not the minimum: %+v", b)
		}
	}
}

func TestResample_Empty(t *testing.T) {
	bars := Resample(nil, time.Minute)
	if len(bars) != 0 {
		t.Fatalf("want no bars, got %d", len(bars))
	}
}
