package reporter

import (
	"fmt"
	"strings"

	"DowntrendAnalyzer/internal/model"
)

// Banner separates trend blocks in the report.
var Banner = strings.Repeat("*", 55)

// FormatTrend renders one downward trend as a bannered block.
func FormatTrend(t model.DownwardTrend) string {
	var b strings.Builder
	b.WriteString(Banner + "\n")
	b.WriteString(fmt.Sprintf("This trend lasted %d days\n", t.DurationDays))
	b.WriteString(fmt.Sprintf("Over this trend the price dropped $%s\n", t.TotalPriceDrop.StringFixed(2)))
	b.WriteString(fmt.Sprintf("The volume decreased as price dropped %d times and increased %d times\n",
		t.VolumeDownCount, t.VolumeUpCount))
	b.WriteString(Banner + "\n")
	return b.String()
}

// FormatSummary renders the closing trend count line.
func FormatSummary(n int) string {
	return fmt.Sprintf("In this time span there were %d separate downward trends.\n", n)
}

// FormatRange renders the debug line describing the collected window.
func FormatRange(dr model.DateRange) string {
	return fmt.Sprintf("Collected Data over %d days spanning from: %s\n", dr.NumDays, dr.Span)
}

// FormatLatest renders the newest day's prices and volume.
func FormatLatest(symbol string, dr model.DateRange, rec model.DailyRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", symbol, dr.Last().Format(model.DateLayout)))
	b.WriteString(fmt.Sprintf("  open:   %s\n", rec.Open))
	b.WriteString(fmt.Sprintf("  high:   %s\n", rec.High))
	b.WriteString(fmt.Sprintf("  low:    %s\n", rec.Low))
	b.WriteString(fmt.Sprintf("  close:  %s\n", rec.Close))
	b.WriteString(fmt.Sprintf("  volume: %s\n", rec.Volume))
	return b.String()
}

// FormatReport renders every trend followed by the summary line.
func FormatReport(r *model.TrendReport, debug bool) string {
	var b strings.Builder
	if debug {
		b.WriteString(FormatRange(r.Range))
	}
	for _, t := range r.Trends {
		b.WriteString(FormatTrend(t))
	}
	b.WriteString(FormatSummary(len(r.Trends)))
	return b.String()
}
