package reporter

import (
	"fmt"
	"io"

	"DowntrendAnalyzer/internal/model"
)

// Console writes reports as plain text.
type Console struct {
	Out   io.Writer
	Debug bool
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer, debug bool) *Console {
	return &Console{Out: out, Debug: debug}
}

// Report writes the trend report.
func (c *Console) Report(r *model.TrendReport) error {
	if r == nil {
		return fmt.Errorf("nil report")
	}
	_, err := io.WriteString(c.Out, FormatReport(r, c.Debug))
	return err
}

// Latest writes the newest day's record.
func (c *Console) Latest(symbol string, dr *model.DateRange, rec model.DailyRecord) error {
	if dr == nil || dr.NumDays == 0 {
		return model.ErrEmptyInput
	}
	out := FormatLatest(symbol, *dr, rec)
	if c.Debug {
		out = FormatRange(*dr) + out
	}
	_, err := io.WriteString(c.Out, out)
	return err
}
