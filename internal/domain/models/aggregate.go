package models

// Aggregate is the open/close/high/low summary of one filtered tick set.
//
// Fields:
//   - ProductCode / ExpiryMonth: the contract the summary describes.
//   - Open: price of the first tick in file order.
//   - Close: price of the last tick in file order.
//   - High / Low: maximum / minimum price across all ticks.
//
// Computed once per run and serialized immediately; never persisted.
type Aggregate struct {
	ProductCode string
	ExpiryMonth string
	Open        float64
	Close       float64
	High        float64
	Low         float64
}
