package models

import "time"

// Tick represents a single transaction row in a TAIFEX daily futures file.
// The five interpreted columns map to typed fields; every other column in the
// source file is carried verbatim in Extra and never interpreted.
//
// Interpreted columns (Chinese header → field):
//
//	成交日期       → TradeDate (DATE, "20060102" or "2006/01/02" in the file)
//	商品代號       → ProductCode (string, e.g. "MTX")
//	到期月份(週別) → ExpiryMonth (string, e.g. "202501")
//	成交時間       → TradeTime (TIME; HHMMSS zero-padded, or HH:MM:SS)
//	成交價格       → Price (float)
//	成交數量       → Volume (int64, 0 when the column is absent or empty)
type Tick struct {
	TradeDate   time.Time
	ProductCode string
	ExpiryMonth string
	TradeTime   time.Time
	Price       float64
	Volume      int64
	Extra       []Cell
}

// Cell is one passthrough column value, kept in file order.
type Cell struct {
	Header string
	Value  string
}

// At returns the tick's composite (date, time-of-day) ordering key.
func (t Tick) At() DayTime {
	return DayTime{Date: t.TradeDate, Time: t.TradeTime}
}

// Timestamp combines TradeDate and TradeTime into a single instant,
// used when bucketing ticks into fixed-interval bars.
func (t Tick) Timestamp() time.Time {
	return time.Date(
		t.TradeDate.Year(), t.TradeDate.Month(), t.TradeDate.Day(),
		t.TradeTime.Hour(), t.TradeTime.Minute(), t.TradeTime.Second(), 0,
		time.UTC,
	)
}
