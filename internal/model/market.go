package model

import "time"

// DateLayout is the calendar-date format used for DailySeries keys.
const DateLayout = "2006-01-02"

// DailyRecord is one day's OHLCV bar exactly as the price feed delivers it.
// Prices are decimal strings and volume is an integer string; parsing happens
// in the calculator package.
type DailyRecord struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// DailySeries maps a calendar date (DateLayout) to that day's record.
type DailySeries map[string]DailyRecord

// DateRange holds the sorted trading dates of a DailySeries.
type DateRange struct {
	NumDays int
	Dates   []time.Time // ascending, never empty
	Span    string      // "earliest - latest"
}

// First returns the earliest date.
func (r DateRange) First() time.Time { return r.Dates[0] }

// Last returns the latest date.
func (r DateRange) Last() time.Time { return r.Dates[len(r.Dates)-1] }
