// Package charts turns aggregation output into PNG images. Renderers are
// stateless pure functions: series in, image bytes out. Encoding for
// transport (base64) is the caller's concern.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"fintrack/internal/core"
)

// ErrNoData signals an empty underlying series. Callers translate it to a
// "no image" response instead of rendering an empty chart.
var ErrNoData = errors.New("no data to chart")

// Fixed palettes, cycled when a series has more entries than colors.
var (
	categoryPalette = paletteFromHex(
		"FF6B6B", "4ECDC4", "45B7D1", "96CEB4", "FFEAA7",
		"DDA0DD", "98D8C8", "F7DC6F", "BB8FCE", "85C1E9",
	)
	sourcePalette = paletteFromHex(
		"4cc9f0", "4361ee", "3a0ca3", "7209b7", "f72585",
		"4895ef", "4cc9f0", "f8961e", "90be6d", "f9c74f",
	)
	incomeColor  = drawing.ColorFromHex("4cc9f0")
	expenseColor = drawing.ColorFromHex("f72585")
)

const (
	pieWidth   = 1000
	pieHeight  = 800
	wideWidth  = 1200
	wideHeight = 600

	barWidthPx   = 40
	barSpacingPx = 20
)

// CategoryPie renders the expenses-by-category pie.
func CategoryPie(rows []core.NamedAmount) ([]byte, error) {
	return pie("Expenses by Category", rows, categoryPalette)
}

// SourcePie renders the income-by-source pie.
func SourcePie(rows []core.NamedAmount) ([]byte, error) {
	return pie("Income by Source", rows, sourcePalette)
}

func pie(title string, rows []core.NamedAmount, palette []drawing.Color) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	values := make([]chart.Value, len(rows))
	for i, row := range rows {
		values[i] = chart.Value{
			Label: row.Name,
			Value: row.Amount,
			Style: chart.Style{FillColor: palette[i%len(palette)]},
		}
	}
	c := chart.PieChart{
		Title:  title,
		Width:  pieWidth,
		Height: pieHeight,
		Values: values,
	}
	return render(c.Render)
}

// MonthlyIncomeBar renders income totals per month as a bar chart.
func MonthlyIncomeBar(buckets []core.Bucket) ([]byte, error) {
	if len(buckets) == 0 {
		return nil, ErrNoData
	}
	bars := make([]chart.Value, len(buckets))
	for i, b := range buckets {
		bars[i] = chart.Value{
			Label: b.Key,
			Value: b.Amount,
			Style: chart.Style{FillColor: incomeColor, StrokeColor: incomeColor},
		}
	}
	return barChart("Monthly Income", bars)
}

// DailyExpenseBar renders the last-7-days expense buckets as a bar chart.
func DailyExpenseBar(buckets []core.Bucket) ([]byte, error) {
	if len(buckets) == 0 {
		return nil, ErrNoData
	}
	bars := make([]chart.Value, len(buckets))
	for i, b := range buckets {
		bars[i] = chart.Value{
			Label: b.Key,
			Value: b.Amount,
			Style: chart.Style{FillColor: expenseColor, StrokeColor: expenseColor},
		}
	}
	return barChart("Daily Expenses (Last 7 Days)", bars)
}

// ExpenseTrend renders monthly expense totals as a line with a filled area
// and a value annotation on every point.
func ExpenseTrend(buckets []core.Bucket) ([]byte, error) {
	if len(buckets) == 0 {
		return nil, ErrNoData
	}
	xs := make([]float64, len(buckets))
	ys := make([]float64, len(buckets))
	ticks := make([]chart.Tick, len(buckets))
	annotations := make([]chart.Value2, len(buckets))
	var maxY float64
	for i, b := range buckets {
		xs[i] = float64(i)
		ys[i] = b.Amount
		ticks[i] = chart.Tick{Value: float64(i), Label: b.Key}
		annotations[i] = chart.Value2{
			XValue: float64(i),
			YValue: b.Amount,
			Label:  fmt.Sprintf("$%.2f", b.Amount),
		}
		if b.Amount > maxY {
			maxY = b.Amount
		}
	}
	if len(buckets) == 1 {
		// The x-range spans the ticks and must not collapse to a point, so a
		// lone month becomes a short flat segment around its tick.
		xs = []float64{-0.25, 0, 0.25}
		ys = []float64{ys[0], ys[0], ys[0]}
		ticks = []chart.Tick{{Value: -0.25}, {Value: 0, Label: buckets[0].Key}, {Value: 0.25}}
	}
	fill := expenseColor
	fill.A = 80
	c := chart.Chart{
		Title:  "Monthly Expense Trends",
		Width:  wideWidth,
		Height: wideHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: padMax(maxY)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: expenseColor,
					StrokeWidth: 2,
					FillColor:   fill,
				},
			},
			chart.AnnotationSeries{
				Annotations: annotations,
				Style:       chart.Style{StrokeColor: expenseColor},
			},
		},
	}
	return render(c.Render)
}

// IncomeVsExpense renders a grouped bar chart with an income and an expense
// bar per month.
func IncomeVsExpense(series []core.MonthComparison) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}
	bars := make([]chart.Value, 0, 2*len(series))
	for _, m := range series {
		bars = append(bars,
			chart.Value{
				Label: m.Month,
				Value: m.Income,
				Style: chart.Style{FillColor: incomeColor, StrokeColor: incomeColor},
			},
			chart.Value{
				Value: m.Expense,
				Style: chart.Style{FillColor: expenseColor, StrokeColor: expenseColor},
			},
		)
	}
	return barChart("Monthly Income vs Expenses", bars)
}

func barChart(title string, bars []chart.Value) ([]byte, error) {
	var maxY float64
	for _, b := range bars {
		if b.Value > maxY {
			maxY = b.Value
		}
	}
	yMax := padMax(maxY)
	c := chart.BarChart{
		Title:      title,
		Width:      wideWidth,
		Height:     wideHeight,
		BarWidth:   barWidthPx,
		BarSpacing: barSpacingPx,
		XAxis:      chart.Shown(),
		YAxis: chart.YAxis{
			Style: chart.Shown(),
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Bars:     bars,
		Elements: []chart.Renderable{barValueLabels(bars, yMax)},
	}
	return render(c.Render)
}

// barValueLabels draws each bar's dollar value just above its top edge. The
// layout math mirrors the bar renderer's width scaling so the labels stay
// centered when bars shrink to fit the canvas.
func barValueLabels(bars []chart.Value, yMax float64) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		width, spacing := scaledBarLayout(canvas, len(bars))
		style := chart.Style{
			Font:      defaults.Font,
			FontSize:  10,
			FontColor: chart.DefaultTextColor,
		}
		style.WriteTextOptionsToRenderer(r)

		xoffset := canvas.Left
		for _, bar := range bars {
			label := fmt.Sprintf("$%.2f", bar.Value)
			cx := xoffset + spacing/2 + width/2
			top := canvas.Bottom - int(float64(canvas.Height())*bar.Value/yMax)
			chart.Draw.Text(r, label, cx-r.MeasureText(label).Width()/2, top-5, style)
			xoffset += width + spacing
		}
	}
}

// scaledBarLayout reproduces the renderer's effective bar width and spacing:
// when the configured sizes overflow the canvas, spacing shrinks first, then
// the bars themselves.
func scaledBarLayout(canvas chart.Box, count int) (width, spacing int) {
	width, spacing = barWidthPx, barSpacingPx
	if count*(width+spacing) > canvas.Width() {
		if rem := canvas.Width() - count*width; rem > 0 {
			spacing = int(math.Ceil(float64(rem) / float64(count)))
		} else {
			spacing = 0
		}
	}
	if count*(width+spacing) > canvas.Width() {
		if rem := canvas.Width() - count*spacing; rem > 0 {
			width = int(math.Ceil(float64(rem) / float64(count)))
		} else {
			width = 0
		}
	}
	return width, spacing
}

// padMax gives the y-axis headroom above the tallest value. Zero-only data
// still gets a non-degenerate range.
func padMax(maxY float64) float64 {
	if maxY <= 0 {
		return 1
	}
	return maxY * 1.15
}

func render(fn func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func paletteFromHex(hexes ...string) []drawing.Color {
	colors := make([]drawing.Color, len(hexes))
	for i, h := range hexes {
		colors[i] = drawing.ColorFromHex(h)
	}
	return colors
}
