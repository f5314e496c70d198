package render

import "github.com/gogpu/gg"

const (
	DefaultBackground = "#292929"
	DefaultForeground = "#f9f6f2"
	DefaultGrid       = "#91908E"
	DefaultFontSize   = 20.0
)

// Theme is the fixed look shared by every chart of a job.
type Theme struct {
	Background string
	Foreground string
	Grid       string
	FontSize   float64
}

func DefaultTheme() Theme {
	return Theme{
		Background: DefaultBackground,
		Foreground: DefaultForeground,
		Grid:       DefaultGrid,
		FontSize:   DefaultFontSize,
	}
}

// WithBackground returns a copy using bg when it is a usable color.
func (t Theme) WithBackground(bg string) Theme {
	if _, ok := parseColor(bg); ok {
		t.Background = bg
	}
	return t
}

func (t Theme) background() gg.RGBA {
	return colorOr(t.Background, gg.Hex(DefaultBackground))
}

func (t Theme) foreground() gg.RGBA {
	return colorOr(t.Foreground, gg.Hex(DefaultForeground))
}

func (t Theme) grid() gg.RGBA {
	return colorOr(t.Grid, gg.Hex(DefaultGrid))
}
