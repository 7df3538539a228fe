package calculator

import (
	"fmt"
	"sort"
	"time"

	"DowntrendAnalyzer/internal/model"
)

// AnalyzeDateRange parses the series' date keys and returns them sorted
// ascending together with the day count and a printable span.
func AnalyzeDateRange(data model.DailySeries) (*model.DateRange, error) {
	if len(data) == 0 {
		return nil, model.ErrEmptyInput
	}
	dates := make([]time.Time, 0, len(data))
	for key := range data {
		d, err := time.Parse(model.DateLayout, key)
		if err != nil {
			return nil, &model.ParseError{Field: "date", Value: key, Err: err}
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	n := len(dates)
	return &model.DateRange{
		NumDays: n,
		Dates:   dates,
		Span:    fmt.Sprintf("%s - %s", dates[0].Format(model.DateLayout), dates[n-1].Format(model.DateLayout)),
	}, nil
}

// RecordAt looks up the record for a parsed date.
func RecordAt(data model.DailySeries, date time.Time) (model.DailyRecord, error) {
	key := date.Format(model.DateLayout)
	rec, ok := data[key]
	if !ok {
		return model.DailyRecord{}, fmt.Errorf("no record for %s", key)
	}
	return rec, nil
}

// LatestRecord returns the record of the most recent trading day.
func LatestRecord(data model.DailySeries, dr *model.DateRange) (model.DailyRecord, error) {
	if dr == nil || dr.NumDays == 0 {
		return model.DailyRecord{}, model.ErrEmptyInput
	}
	return RecordAt(data, dr.Last())
}
