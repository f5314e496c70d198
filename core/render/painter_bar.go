package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"chartd/core/charts"
	"github.com/gogpu/gg"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// barChart renders a percentage stacked bar chart through go-chart and adds
// the legend on the right with gg.
type barChart struct {
	cfg   charts.BarConfig
	theme Theme
	img   image.Image
}

const (
	barLegendSwatch = 12.0
	barLegendGap    = 6.0
)

func (b *barChart) Draw(s *Surface) error {
	w, h := s.Width(), s.Height()
	legendWidth := 0
	if b.cfg.Legend && len(b.cfg.Datasets) > 0 {
		legendWidth = max(w/4, 40)
	}
	plotWidth := w - legendWidth
	if plotWidth < 20 || h < 20 {
		return fmt.Errorf("%w: bar tile %dx%d too small", ErrRenderFailed, w, h)
	}

	if len(b.cfg.Labels) == 0 {
		return nil
	}
	graph := b.stackedBars(plotWidth, h)
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("%w: bar chart: %v", ErrRenderFailed, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("%w: decode bar chart: %v", ErrRenderFailed, err)
	}
	b.img = img
	dc := s.Context()
	dc.DrawImage(gg.ImageBufFromImage(img), 0, 0)
	if err := b.drawTitle(dc); err != nil {
		return err
	}

	if legendWidth > 0 {
		return b.drawLegend(dc, float64(plotWidth), float64(h))
	}
	return nil
}

func (b *barChart) stackedBars(width, height int) chart.StackedBarChart {
	fg := toDrawingColor(b.theme.foreground())
	grid := toDrawingColor(b.theme.grid())
	pad := int(b.cfg.Padding)
	fontSize := b.theme.FontSize / 2

	n := len(b.cfg.Labels)
	inner := width - 2*pad - 40
	spacing := 8
	barWidth := 20
	if n > 0 && inner > 0 {
		slot := inner / n
		spacing = max(slot/4, 2)
		barWidth = max(slot-spacing, 2)
	}

	bars := make([]chart.StackedBar, n)
	for c := 0; c < n; c++ {
		bars[c] = chart.StackedBar{Name: b.cfg.Labels[c], Width: barWidth, Values: b.stack(c)}
	}

	return chart.StackedBarChart{
		Width:      width,
		Height:     height,
		BarSpacing: spacing,
		Background: chart.Style{
			FillColor:   drawing.ColorTransparent,
			StrokeColor: drawing.ColorTransparent,
			Padding:     chart.Box{Top: pad + int(b.theme.FontSize), Left: pad, Right: pad, Bottom: pad},
		},
		Canvas: chart.Style{
			FillColor:   drawing.ColorTransparent,
			StrokeColor: drawing.ColorTransparent,
		},
		XAxis: chart.Style{
			FontColor:   fg,
			FontSize:    fontSize,
			StrokeColor: grid,
		},
		YAxis: chart.Style{
			FontColor:   fg,
			FontSize:    fontSize,
			StrokeColor: grid,
		},
		Bars: bars,
	}
}

// stack builds the go-chart values for category c. go-chart normalizes each
// bar to the full plot height and draws values top-down, so the first dataset
// goes last and a transparent filler of YMax minus the total goes first.
// Anything above YMax is clipped off the top.
func (b *barChart) stack(c int) []chart.Value {
	limit := b.cfg.YMax
	if !(limit > 0) {
		limit = 100
	}
	values := make([]chart.Value, 0, len(b.cfg.Datasets)+1)
	room := limit
	for i, ds := range b.cfg.Datasets {
		v := ds.Data[c]
		if !(v > 0) || room <= 0 {
			continue
		}
		v = math.Min(v, room)
		room -= v
		values = append(values, chart.Value{
			Label: ds.Label,
			Value: v,
			Style: chart.Style{
				FillColor:   toDrawingColor(datasetFill(ds, i)),
				StrokeColor: toDrawingColor(datasetBorder(ds, i)),
				StrokeWidth: 1,
			},
		})
	}
	if room > 0 {
		values = append(values, chart.Value{
			Value: room,
			Style: chart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
		})
	}
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
	return values
}

func (b *barChart) drawTitle(dc *gg.Context) error {
	if b.cfg.Title == "" {
		return nil
	}
	face, err := fontFace(false, b.theme.FontSize*0.6)
	if err != nil {
		return err
	}
	dc.SetFont(face)
	setColor(dc, b.theme.foreground())
	dc.DrawStringAnchored(b.cfg.Title, b.cfg.Padding, b.cfg.Padding, 0, 1)
	return nil
}

func (b *barChart) drawLegend(dc *gg.Context, left, height float64) error {
	face, err := fontFace(false, b.theme.FontSize*0.6)
	if err != nil {
		return err
	}
	dc.SetFont(face)
	entries := make([]int, len(b.cfg.Datasets))
	for i := range entries {
		entries[i] = i
	}
	if b.cfg.LegendReverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	row := barLegendSwatch + barLegendGap*2
	y := b.cfg.Padding + b.theme.FontSize
	x := left + barLegendGap
	for _, idx := range entries {
		ds := b.cfg.Datasets[idx]
		setColor(dc, datasetFill(ds, idx))
		dc.DrawRectangle(x, y, barLegendSwatch, barLegendSwatch)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("%w: legend swatch: %v", ErrRenderFailed, err)
		}
		setColor(dc, b.theme.foreground())
		dc.DrawStringAnchored(ds.Label, x+barLegendSwatch+barLegendGap, y+barLegendSwatch/2, 0, 0.35)
		y += row
		if y > height-row {
			break
		}
	}
	return nil
}

func (b *barChart) Dispose() {
	b.img = nil
}
