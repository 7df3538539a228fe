package calculator

import (
	"strconv"

	"github.com/shopspring/decimal"

	"DowntrendAnalyzer/internal/model"
)

var four = decimal.NewFromInt(4)

// AveragePrice returns the arithmetic mean of a day's open, high, low and close.
func AveragePrice(rec model.DailyRecord) (decimal.Decimal, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"open", rec.Open},
		{"high", rec.High},
		{"low", rec.Low},
		{"close", rec.Close},
	}
	sum := decimal.Zero
	for _, f := range fields {
		d, err := decimal.NewFromString(f.value)
		if err != nil {
			return decimal.Zero, &model.ParseError{Field: f.name, Value: f.value, Err: err}
		}
		sum = sum.Add(d)
	}
	return sum.Div(four), nil
}

// ParseVolume returns the day's traded volume.
func ParseVolume(rec model.DailyRecord) (int64, error) {
	v, err := strconv.ParseInt(rec.Volume, 10, 64)
	if err != nil {
		return 0, &model.ParseError{Field: "volume", Value: rec.Volume, Err: err}
	}
	return v, nil
}
