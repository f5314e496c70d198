package render

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// palette backs datasets that arrive without colors.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
}

func paletteColor(i int) gg.RGBA {
	return gg.Hex(palette[i%len(palette)])
}

// parseColor accepts #rgb, #rgba, #rrggbb, #rrggbbaa and the rgb()/rgba()
// notations browsers send.
func parseColor(raw string) (gg.RGBA, bool) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return gg.RGBA{}, false
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return gg.RGBA{}, false
		}
		if _, err := strconv.ParseUint(hex, 16, 64); err != nil {
			return gg.RGBA{}, false
		}
		return gg.Hex(hex), true
	}
	var body string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body = s[len("rgba(") : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body = s[len("rgb(") : len(s)-1]
	default:
		return gg.RGBA{}, false
	}
	parts := strings.Split(body, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return gg.RGBA{}, false
	}
	var channels [4]float64
	channels[3] = 1
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		if i < 3 {
			v /= 255
		}
		channels[i] = clamp01(v)
	}
	return gg.RGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, true
}

func colorOr(raw string, fallback gg.RGBA) gg.RGBA {
	if c, ok := parseColor(raw); ok {
		return c
	}
	return fallback
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

func toDrawingColor(c gg.RGBA) drawing.Color {
	return drawing.Color{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
