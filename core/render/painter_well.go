package render

import (
	"fmt"
	"math"

	"chartd/core/charts"
	"github.com/gogpu/gg"
)

const wellTicks = 4

// wellChart draws grouped columns over a single value axis starting at zero.
type wellChart struct {
	cfg   charts.WellConfig
	theme Theme
}

type plotArea struct {
	left, top, right, bottom float64
}

func (p plotArea) width() float64  { return p.right - p.left }
func (p plotArea) height() float64 { return p.bottom - p.top }

func (wc *wellChart) Draw(s *Surface) error {
	dc := s.Context()
	w, h := float64(s.Width()), float64(s.Height())
	size := math.Max(8, math.Min(wc.theme.FontSize*0.6, h/8))
	face, err := fontFace(false, size)
	if err != nil {
		return err
	}
	labelFace, err := fontFace(wc.cfg.Label.Bold, size)
	if err != nil {
		return err
	}
	dc.SetFont(face)
	tickWidth, _ := dc.MeasureString(charts.FormatWellPercent(wc.cfg.YMax))
	pad := wc.cfg.Padding
	area := plotArea{
		left:   pad + tickWidth + 6,
		top:    pad + size/2,
		right:  w - pad,
		bottom: h - pad - size*1.4,
	}
	if area.width() <= 0 || area.height() <= 0 {
		return fmt.Errorf("%w: well tile %.0fx%.0f too small", ErrRenderFailed, w, h)
	}
	span := wc.cfg.YMax - wc.cfg.YMin
	if span <= 0 {
		span = 1
	}
	yOf := func(v float64) float64 {
		v = math.Max(wc.cfg.YMin, math.Min(wc.cfg.YMax, v))
		return area.bottom - (v-wc.cfg.YMin)/span*area.height()
	}

	if err := wc.drawAxis(dc, area, yOf); err != nil {
		return err
	}

	n := len(wc.cfg.Labels)
	if n == 0 {
		return nil
	}
	series := max(len(wc.cfg.Datasets), 1)
	group := area.width() / float64(n)
	barWidth := group * 0.8 / float64(series)
	for c := 0; c < n; c++ {
		x0 := area.left + group*float64(c) + group*0.1
		for i, ds := range wc.cfg.Datasets {
			v := ds.Data[c]
			if math.IsNaN(v) {
				continue
			}
			x := x0 + barWidth*float64(i)
			top := yOf(v)
			setColor(dc, datasetFill(ds, i))
			dc.DrawRectangle(x, top, barWidth, area.bottom-top)
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("%w: well bar: %v", ErrRenderFailed, err)
			}
			dc.SetFont(labelFace)
			setColor(dc, colorOr(wc.cfg.Label.Color, gg.RGB(1, 1, 1)))
			dc.DrawStringAnchored(wc.cfg.Format(v), x+barWidth/2, area.bottom-wc.cfg.Label.Offset, 0.5, 0)
		}
		dc.SetFont(face)
		setColor(dc, wc.theme.foreground())
		dc.DrawStringAnchored(wc.cfg.Labels[c], area.left+group*(float64(c)+0.5), area.bottom+size*1.2, 0.5, 0)
	}
	return nil
}

func (wc *wellChart) drawAxis(dc *gg.Context, area plotArea, yOf func(float64) float64) error {
	setColor(dc, wc.theme.grid())
	dc.SetLineWidth(1)
	for i := 0; i <= wellTicks; i++ {
		v := wc.cfg.YMin + (wc.cfg.YMax-wc.cfg.YMin)*float64(i)/wellTicks
		y := yOf(v)
		dc.MoveTo(area.left, y)
		dc.LineTo(area.right, y)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("%w: well grid: %v", ErrRenderFailed, err)
	}
	setColor(dc, wc.theme.foreground())
	for i := 0; i <= wellTicks; i++ {
		v := wc.cfg.YMin + (wc.cfg.YMax-wc.cfg.YMin)*float64(i)/wellTicks
		dc.DrawStringAnchored(charts.FormatWellPercent(v), area.left-4, yOf(v), 1, 0.35)
	}
	return nil
}

func (wc *wellChart) Dispose() {}
