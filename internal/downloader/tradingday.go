package downloader

import "time"

// LatestTradingDay returns the most recent Taiwan trading day on or before
// from, formatted for the daily-sales listing (PageDateLayout). It is the
// default target when download mode is run without an explicit date.
func LatestTradingDay(from time.Time) string {
	d := truncateToDate(from)
	for !isTradingDayTW(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d.Format(PageDateLayout)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// isTradingDayTW returns true if date is a trading day in Taiwan.
//
// Weekends and fixed national holidays are excluded. Lunar-calendar holidays
// (Lunar New Year, Dragon Boat, Mid-Autumn, Tomb Sweeping adjustments) shift
// every year and are not modeled; if such a date is picked, the listing
// simply has no row for it and the download reports not-found.
func isTradingDayTW(d time.Time) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}

	fixed := map[string]struct{}{
		"01-01": {}, // New Year's Day
		"02-28": {}, // Peace Memorial Day
		"04-04": {}, // Children's Day
		"05-01": {}, // Labor Day
		"10-10": {}, // National Day
	}
	if _, ok := fixed[d.Format("01-02")]; ok {
		return false
	}

	return true
}
