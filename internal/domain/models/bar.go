package models

import "time"

// Bar is one fixed-interval OHLC bucket produced by resampling ticks.
type Bar struct {
	Start  time.Time // bucket start, inclusive
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}
