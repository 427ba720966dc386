package forecast

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"crop_forecast/internal/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
)

var trajectoryColor = color.RGBA{G: 128, A: 255}

// RenderChart draws the trajectory as a PNG line chart at path. The file is
// written to a temporary sibling and renamed, so readers never see a partial image.
func RenderChart(path, cropType string, points []models.PricePoint) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Predicted Prices for %s Over the Next %d Years", cropType, len(points))
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Price (₹/ton)"
	p.Add(plotter.NewGrid())

	// X is plotted as an offset from base so far-future years stay exact in float64.
	base := 0
	if len(points) > 0 {
		base = addYears(points[0].Year, -1)
	}
	p.X.Tick.Marker = yearTicker(base)

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Year - base)
		xys[i].Y = pt.Price
	}
	line, marks, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("build chart line: %w", err)
	}
	line.Color = trajectoryColor
	marks.Shape = draw.CircleGlyph{}
	marks.Color = trajectoryColor
	p.Add(line, marks)

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".chart-*.png")
	if err != nil {
		return fmt.Errorf("create chart temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := wt.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write chart: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close chart temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace chart %q: %w", path, err)
	}
	return nil
}

// maxYearTicks caps one-tick-per-year labelling; wider ranges use default ticks.
const maxYearTicks = 50

// yearTicker labels every whole offset in range with base+offset as the year.
func yearTicker(base int) plot.Ticker {
	return plot.TickerFunc(func(lo, hi float64) []plot.Tick {
		switch {
		case !(hi > lo):
			return []plot.Tick{{Value: lo, Label: yearLabel(base, lo)}}
		case hi-lo > maxYearTicks:
			return plot.DefaultTicks{}.Ticks(lo, hi)
		}
		var ticks []plot.Tick
		for y := math.Ceil(lo); y <= hi; y++ {
			ticks = append(ticks, plot.Tick{Value: y, Label: yearLabel(base, y)})
		}
		return ticks
	})
}

func yearLabel(base int, offset float64) string {
	return strconv.Itoa(addYears(base, int(offset)))
}

// addYears returns year+n, saturating at the int range instead of wrapping.
func addYears(year, n int) int {
	switch {
	case n > 0 && year > math.MaxInt-n:
		return math.MaxInt
	case n < 0 && year < math.MinInt-n:
		return math.MinInt
	}
	return year + n
}
