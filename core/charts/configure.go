package charts

import (
	"fmt"
	"math"
)

const (
	DefaultBarTitle = "Line Clear Distribution"
	// RadarOffsetScale converts an offset table delta into label pixels.
	RadarOffsetScale = 160.0
	WellLabelOffset  = 20.0
)

type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorStart
	AnchorEnd
)

type LabelStyle struct {
	Color        string
	Bold         bool
	Anchor       Anchor
	Align        Anchor
	Offset       float64
	BorderRadius float64
	BorderWidth  float64
}

// Config is a closed set: BarConfig, WellConfig and RadarConfig.
type Config interface {
	Kind() Kind
	sealed()
}

type BarConfig struct {
	Title         string
	Labels        []string
	Datasets      []Dataset
	// YMax is the full height of a stack; taller stacks are clipped.
	YMax          float64
	Legend        bool
	LegendReverse bool
	Padding       float64
}

type WellConfig struct {
	Labels   []string
	Datasets []Dataset
	YMin     float64
	YMax     float64
	Padding  float64
	Label    LabelStyle
	Format   func(value float64) string
}

type RadarConfig struct {
	Labels    []string
	Datasets  []Dataset
	RMax      float64
	Padding   float64
	LineWidth float64
	Label     LabelStyle
	// Format renders the label of (series, category) for a normalized value.
	Format func(series, category int, value float64) string
	// LabelOffset is the pixel distance between a point and its label.
	LabelOffset func(series, category int) float64
}

func (BarConfig) Kind() Kind   { return KindBar }
func (WellConfig) Kind() Kind  { return KindWell }
func (RadarConfig) Kind() Kind { return KindRadar }

func (BarConfig) sealed()   {}
func (WellConfig) sealed()  {}
func (RadarConfig) sealed() {}

// Configure builds a fresh rendering configuration for one item. The result
// shares no memory with the item.
func Configure(item Item) (Config, error) {
	switch item.Kind {
	case KindBar:
		if err := item.Validate(); err != nil {
			return nil, err
		}
		return configureBar(item), nil
	case KindWell:
		if err := item.Validate(); err != nil {
			return nil, err
		}
		return configureWell(item), nil
	case KindRadar:
		if err := item.Validate(); err != nil {
			return nil, err
		}
		return configureRadar(item), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChartType, item.Subtype)
	}
}

func configureBar(item Item) BarConfig {
	title := item.Title
	if title == "" {
		title = DefaultBarTitle
	}
	return BarConfig{
		Title:         title,
		Labels:        categoryLabels(item.Labels, item.Categories()),
		Datasets:      copyDatasets(item.Datasets),
		YMax:          100,
		Legend:        true,
		LegendReverse: true,
		Padding:       10,
	}
}

func configureWell(item Item) WellConfig {
	yMax := 0.0
	if item.ScaleYMax != nil && *item.ScaleYMax > 0 {
		yMax = *item.ScaleYMax
	} else {
		for _, ds := range item.Datasets {
			for _, v := range ds.Data {
				if !math.IsNaN(v) && v > yMax {
					yMax = v
				}
			}
		}
		if yMax <= 0 {
			yMax = 1
		}
	}
	return WellConfig{
		Labels:   categoryLabels(item.Labels, item.Categories()),
		Datasets: copyDatasets(item.Datasets),
		YMin:     0,
		YMax:     yMax,
		Padding:  10,
		Label: LabelStyle{
			Color:  "#ffffff",
			Bold:   true,
			Anchor: AnchorStart,
			Align:  AnchorEnd,
			Offset: WellLabelOffset,
		},
		Format: FormatWellPercent,
	}
}

func configureRadar(item Item) RadarConfig {
	n := item.Categories()
	lo := append([]float64(nil), item.Min[:n]...)
	hi := append([]float64(nil), item.Max[:n]...)
	kinds := append([]FormatKind(nil), item.FormatTypes[:n]...)
	values := item.Values()
	offsets := GenerateOffsets(values)
	return RadarConfig{
		Labels:    categoryLabels(item.Labels, n),
		Datasets:  copyDatasets(item.Datasets),
		RMax:      1,
		Padding:   20,
		LineWidth: 3,
		Label: LabelStyle{
			Color:        "#f9f6f2",
			Align:        AnchorEnd,
			BorderRadius: 4,
			BorderWidth:  1,
		},
		Format: func(_, category int, value float64) string {
			if category < 0 || category >= n {
				return formatErrorLabel
			}
			return FormatValue(kinds[category], Denormalize(value, lo[category], hi[category]))
		},
		LabelOffset: func(series, category int) float64 {
			return RadarOffsetScale * offsets.Delta(values, series, category)
		},
	}
}
