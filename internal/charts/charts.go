// Package charts renders summary data as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/insightdelivered/statement-lens/internal/models"
)

// ErrNoData is returned when there is nothing to draw, e.g. a statement
// without spend rows.
var ErrNoData = errors.New("no data to chart")

// MaxSlices caps how many names a breakdown pie shows.
const MaxSlices = 10

var background = chart.Style{
	Padding: chart.Box{
		Top:    50,
		Left:   50,
		Right:  50,
		Bottom: 50,
	},
	FillColor: chart.ColorWhite,
}

// Histogram draws one bar per amount bucket.
func Histogram(h models.Histogram) ([]byte, error) {
	if h.TotalCount == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, 0, len(h.Bins))
	maxCount := 1
	for _, b := range h.Bins {
		bars = append(bars, chart.Value{Label: b.Label, Value: float64(b.Count)})
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	graph := chart.BarChart{
		Title:      "Spending Amounts",
		Width:      900,
		Height:     500,
		BarWidth:   90,
		Background: background,
		YAxis: chart.YAxis{
			// Fixed from zero so equal counts still have a drawable range.
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render histogram: %w", err)
	}
	return buffer.Bytes(), nil
}

// Breakdown draws a pie of the largest positive amounts in items, which are
// expected in descending order as Summarize returns them.
func Breakdown(title string, items []models.NamedAmount) ([]byte, error) {
	values := make([]chart.Value, 0, MaxSlices)
	for _, item := range items {
		if len(values) == MaxSlices {
			break
		}
		if !item.Amount.IsPositive() {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: $%s", item.Name, item.Amount.StringFixed(2)),
			Value: item.Amount.InexactFloat64(),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	pie := chart.PieChart{
		Title:      title,
		Width:      800,
		Height:     800,
		Values:     values,
		Background: background,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", title, err)
	}
	return buffer.Bytes(), nil
}
