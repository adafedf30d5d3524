package ingestion

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/twquant/taifexpulse/internal/domain/apperr"
	"github.com/twquant/taifexpulse/internal/domain/models"
)

// Normalize converts a RawTable into typed ticks: every cell is trimmed of
// surrounding whitespace, 成交日期 and 成交時間 become proper date and
// time-of-day values, and 成交價格 becomes a float.
//
// Row count and order are preserved exactly. Normalization is idempotent —
// a table whose cells are already trimmed produces the same ticks.
//
// Failure mode: an unparseable date, time, or price fails the whole table
// with KindParse, naming the 1-based data row index.
func Normalize(raw *RawTable) ([]models.Tick, error) {
	ticks := make([]models.Tick, 0, len(raw.Rows))

	for i, rec := range raw.Rows {
		t, err := rowToTick(rec, raw)
		if err != nil {
			return nil, apperr.New(apperr.KindParse, fmt.Sprintf("row %d", i+1), err)
		}
		ticks = append(ticks, t)
	}

	return ticks, nil
}

// rowToTick converts one CSV record into a models.Tick. It is STRICT about
// the date/time/price formats but TOLERANT of an empty or absent volume cell,
// which maps to zero.
func rowToTick(rec []string, raw *RawTable) (models.Tick, error) {
	var t models.Tick
	c := raw.cols

	if len(rec) != len(raw.Header) {
		return t, fmt.Errorf("expected %d columns, got %d", len(raw.Header), len(rec))
	}

	d, err := ParseTradeDate(rec[c.date])
	if err != nil {
		return t, err
	}
	t.TradeDate = d

	t.ProductCode = strings.TrimSpace(rec[c.product])
	t.ExpiryMonth = strings.TrimSpace(rec[c.expiry])

	clk, err := ParseTradeTime(rec[c.clock])
	if err != nil {
		return t, err
	}
	t.TradeTime = clk

	price, err := strconv.ParseFloat(strings.TrimSpace(rec[c.price]), 64)
	if err != nil {
		return t, fmt.Errorf("invalid %s: %v", colPrice, err)
	}
	t.Price = price

	if c.volume >= 0 {
		if s := strings.TrimSpace(rec[c.volume]); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return t, fmt.Errorf("invalid %s: %v", colVolume, err)
			}
			t.Volume = v
		}
	}

	for _, idx := range c.extra {
		t.Extra = append(t.Extra, models.Cell{
			Header: raw.Header[idx],
			Value:  strings.TrimSpace(rec[idx]),
		})
	}

	return t, nil
}

// ParseTradeDate parses a 成交日期 cell. TAIFEX files carry dates either as
// compact "20250102" or slashed "2025/01/02"; both are accepted.
func ParseTradeDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"20060102", "2006/01/02"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s: %q", colTradeDate, s)
}

// ParseTradeTime parses a 成交時間 cell: either "HH:MM:SS" or a bare digit
// run like "84500", which is left-padded to six digits (HHMMSS) first.
// The result carries only the clock part, on the zero date.
func ParseTradeTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layout := "150405"
	if strings.Contains(s, ":") {
		layout = "15:04:05"
	} else if n := len(s); n > 0 && n < 6 {
		s = strings.Repeat("0", 6-n) + s
	}
	h, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %q", colTradeTime, s)
	}
	// Keep only the clock part.
	return time.Date(0, 1, 1, h.Hour(), h.Minute(), h.Second(), 0, time.UTC), nil
}
