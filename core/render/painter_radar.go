package render

import (
	"fmt"
	"math"

	"chartd/core/charts"
	"github.com/gogpu/gg"
)

const (
	radarRings       = 5
	radarPointRadius = 3.0
)

// radarChart draws a normalized radar plot. Data labels are pushed outward
// along their spoke by the configured label offset.
type radarChart struct {
	cfg   charts.RadarConfig
	theme Theme
}

type radarGeometry struct {
	cx, cy, radius float64
	n              int
}

func (g radarGeometry) angle(i int) float64 {
	return -math.Pi/2 + 2*math.Pi*float64(i)/float64(g.n)
}

func (g radarGeometry) point(i int, r float64) (float64, float64) {
	a := g.angle(i)
	return g.cx + math.Cos(a)*r, g.cy + math.Sin(a)*r
}

func (rc *radarChart) Draw(s *Surface) error {
	dc := s.Context()
	w, h := float64(s.Width()), float64(s.Height())
	n := len(rc.cfg.Labels)
	if n == 0 {
		return nil
	}
	size := math.Max(7, math.Min(w, h)/18)
	face, err := fontFace(false, size)
	if err != nil {
		return err
	}
	dc.SetFont(face)
	geo := radarGeometry{
		cx:     w / 2,
		cy:     h / 2,
		radius: math.Min(w, h)/2 - rc.cfg.Padding - size,
		n:      n,
	}
	if geo.radius <= 0 {
		return fmt.Errorf("%w: radar tile %.0fx%.0f too small", ErrRenderFailed, w, h)
	}
	if err := rc.drawGrid(dc, geo, size); err != nil {
		return err
	}
	rmax := rc.cfg.RMax
	if rmax <= 0 {
		rmax = 1
	}
	for i, ds := range rc.cfg.Datasets {
		for c := 0; c < n; c++ {
			x, y := geo.point(c, radarRadius(ds.Data[c], rmax)*geo.radius)
			if c == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		setColor(dc, datasetFill(ds, i))
		if err := dc.FillPreserve(); err != nil {
			return fmt.Errorf("%w: radar fill: %v", ErrRenderFailed, err)
		}
		setColor(dc, datasetBorder(ds, i))
		dc.SetLineWidth(rc.cfg.LineWidth)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("%w: radar stroke: %v", ErrRenderFailed, err)
		}
		for c := 0; c < n; c++ {
			x, y := geo.point(c, radarRadius(ds.Data[c], rmax)*geo.radius)
			dc.DrawCircle(x, y, radarPointRadius)
		}
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("%w: radar points: %v", ErrRenderFailed, err)
		}
	}
	for i, ds := range rc.cfg.Datasets {
		for c := 0; c < n; c++ {
			if math.IsNaN(ds.Data[c]) {
				continue
			}
			if err := rc.drawDataLabel(dc, geo, rmax, i, c, ds); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rc *radarChart) drawGrid(dc *gg.Context, geo radarGeometry, size float64) error {
	setColor(dc, rc.theme.grid())
	dc.SetLineWidth(1)
	for ring := 1; ring <= radarRings; ring++ {
		r := geo.radius * float64(ring) / radarRings
		for c := 0; c < geo.n; c++ {
			x, y := geo.point(c, r)
			if c == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
	}
	for c := 0; c < geo.n; c++ {
		x, y := geo.point(c, geo.radius)
		dc.MoveTo(geo.cx, geo.cy)
		dc.LineTo(x, y)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("%w: radar grid: %v", ErrRenderFailed, err)
	}
	setColor(dc, rc.theme.foreground())
	for c, label := range rc.cfg.Labels {
		x, y := geo.point(c, geo.radius+size*0.9)
		a := geo.angle(c)
		dc.DrawStringAnchored(label, x, y, 0.5-math.Cos(a)*0.5, 0.35-math.Sin(a)*0.5)
	}
	return nil
}

func (rc *radarChart) drawDataLabel(dc *gg.Context, geo radarGeometry, rmax float64, series, category int, ds charts.Dataset) error {
	label := rc.cfg.Format(series, category, ds.Data[category])
	tw, th := dc.MeasureString(label)
	padX, padY := 3.0, 1.0
	boxW, boxH := tw+padX*2, th+padY*2
	// align end: the box sits outward of the point, its near edge at the offset
	half := (math.Abs(math.Cos(geo.angle(category)))*boxW + math.Abs(math.Sin(geo.angle(category)))*boxH) / 2
	dist := radarRadius(ds.Data[category], rmax)*geo.radius + rc.cfg.LabelOffset(series, category) + half
	x, y := geo.point(category, dist)

	dc.DrawRoundedRectangle(x-boxW/2, y-boxH/2, boxW, boxH, rc.cfg.Label.BorderRadius)
	setColor(dc, datasetFill(ds, series))
	if err := dc.FillPreserve(); err != nil {
		return fmt.Errorf("%w: radar label box: %v", ErrRenderFailed, err)
	}
	setColor(dc, datasetBorder(ds, series))
	dc.SetLineWidth(rc.cfg.Label.BorderWidth)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("%w: radar label border: %v", ErrRenderFailed, err)
	}
	setColor(dc, colorOr(rc.cfg.Label.Color, rc.theme.foreground()))
	dc.DrawStringAnchored(label, x, y, 0.5, 0.35)
	return nil
}

// radarRadius is the fraction of the radius for v; missing points sit at the center.
func radarRadius(v, rmax float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp01(v / rmax)
}

func (rc *radarChart) Dispose() {}
