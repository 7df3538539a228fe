package trend

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"DowntrendAnalyzer/internal/calculator"
	"DowntrendAnalyzer/internal/model"
)

// day is one parsed trading day.
type day struct {
	date   time.Time
	volume int64
	avg    decimal.Decimal
}

// run accumulates an open downtrend. It is replaced on every step, never
// mutated in place.
type run struct {
	start   time.Time
	end     time.Time
	volumes []int64
	prices  []decimal.Decimal
}

func openRun(cur, next day) run {
	return run{
		start:   cur.date,
		end:     next.date,
		volumes: []int64{cur.volume, next.volume},
		prices:  []decimal.Decimal{cur.avg, next.avg},
	}
}

// extend returns a new run that also covers d. The full slice expressions
// force append to copy, so earlier runs never share backing arrays.
func (r run) extend(d day) run {
	return run{
		start:   r.start,
		end:     d.date,
		volumes: append(r.volumes[:len(r.volumes):len(r.volumes)], d.volume),
		prices:  append(r.prices[:len(r.prices):len(r.prices)], d.avg),
	}
}

func (r run) finalize() model.DownwardTrend {
	t := model.DownwardTrend{
		StartDate:      r.start,
		EndDate:        r.end,
		Volumes:        r.volumes,
		AveragePrices:  r.prices,
		DurationDays:   int(r.end.Sub(r.start).Hours() / 24),
		TotalPriceDrop: r.prices[0].Sub(r.prices[len(r.prices)-1]),
	}
	// Equal volumes count as an increase.
	for i := 0; i < len(r.volumes)-1; i++ {
		if r.volumes[i] > r.volumes[i+1] {
			t.VolumeDownCount++
		} else {
			t.VolumeUpCount++
		}
	}
	return t
}

// state is the fold value threaded through Segment.
type state struct {
	open   *run
	trends []model.DownwardTrend
}

func (s state) step(cur, next day) state {
	if next.avg.LessThan(cur.avg) {
		var r run
		if s.open == nil {
			r = openRun(cur, next)
		} else {
			r = s.open.extend(next)
		}
		return state{open: &r, trends: s.trends}
	}
	return s.close()
}

func (s state) close() state {
	if s.open == nil {
		return s
	}
	return state{trends: append(s.trends, s.open.finalize())}
}

// Segment groups consecutive days into downward trends. A pair of days
// belongs to a trend when the later day's average price is strictly lower
// than the earlier one's. Trends are returned in chronological order.
func Segment(data model.DailySeries, dates []time.Time) ([]model.DownwardTrend, error) {
	days, err := parseDays(data, dates)
	if err != nil {
		return nil, err
	}

	s := state{}
	for i := 0; i+1 < len(days); i++ {
		s = s.step(days[i], days[i+1])
	}
	s = s.close()

	if s.trends == nil {
		return []model.DownwardTrend{}, nil
	}
	return s.trends, nil
}

func parseDays(data model.DailySeries, dates []time.Time) ([]day, error) {
	days := make([]day, len(dates))
	for i, date := range dates {
		rec, err := calculator.RecordAt(data, date)
		if err != nil {
			return nil, err
		}
		avg, err := calculator.AveragePrice(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", date.Format(model.DateLayout), err)
		}
		vol, err := calculator.ParseVolume(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", date.Format(model.DateLayout), err)
		}
		days[i] = day{date: date, volume: vol, avg: avg}
	}
	return days, nil
}
