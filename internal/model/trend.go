package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DownwardTrend is one maximal run of consecutive days with strictly
// decreasing daily average price. Values are finalized by the trend package
// and never modified afterwards.
type DownwardTrend struct {
	StartDate     time.Time
	EndDate       time.Time
	Volumes       []int64
	AveragePrices []decimal.Decimal

	DurationDays    int             // calendar days, not records
	TotalPriceDrop  decimal.Decimal // AveragePrices[0] - AveragePrices[last]
	VolumeDownCount int
	VolumeUpCount   int
}

// TrendReport is the result of one analysis run for a single symbol.
type TrendReport struct {
	Symbol string
	Source string
	Range  DateRange
	Latest DailyRecord
	Trends []DownwardTrend
}
