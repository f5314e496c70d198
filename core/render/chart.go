package render

import (
	"fmt"

	"chartd/core/charts"
	"github.com/gogpu/gg"
)

// Chart is a configured painter bound to one item.
type Chart interface {
	Draw(s *Surface) error
	Dispose()
}

// NewChart returns the painter for cfg. The switch covers every Config type.
func NewChart(cfg charts.Config, theme Theme) (Chart, error) {
	switch c := cfg.(type) {
	case charts.BarConfig:
		return &barChart{cfg: c, theme: theme}, nil
	case charts.WellConfig:
		return &wellChart{cfg: c, theme: theme}, nil
	case charts.RadarConfig:
		return &radarChart{cfg: c, theme: theme}, nil
	default:
		return nil, fmt.Errorf("%w: no painter for %T", charts.ErrUnsupportedChartType, cfg)
	}
}

func datasetFill(ds charts.Dataset, i int) gg.RGBA {
	return colorOr(ds.BackgroundColor, paletteColor(i))
}

func datasetBorder(ds charts.Dataset, i int) gg.RGBA {
	return colorOr(ds.BorderColor, datasetFill(ds, i))
}
