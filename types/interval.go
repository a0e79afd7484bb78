package types

type Interval string

// The resolver only ever asks for two granularities: fine-grained bars for
// intraday matching and daily bars for everything else.
const (
	FiveMinutes Interval = "5"
	Day         Interval = "D"
)
