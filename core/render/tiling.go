package render

import "chartd/core/charts"

// Tiling arranges the items of one job on the destination surface.
type Tiling uint8

const (
	TilingSingle Tiling = iota
	TilingHorizontal
	TilingVertical
)

func (t Tiling) String() string {
	switch t {
	case TilingHorizontal:
		return "horizontal"
	case TilingVertical:
		return "vertical"
	default:
		return "single"
	}
}

// TilingFor picks the layout used for a top-level chart kind.
func TilingFor(kind charts.Kind) (Tiling, bool) {
	switch kind {
	case charts.KindBar:
		return TilingHorizontal, true
	case charts.KindWell:
		return TilingVertical, true
	case charts.KindRadar:
		return TilingSingle, true
	default:
		return TilingSingle, false
	}
}

// MaxSurfacePixels caps every surface, whatever limits the caller passes.
const MaxSurfacePixels = 1 << 27

// tiles is how many item tiles the destination spans for n items.
func (t Tiling) tiles(n int) int {
	if n < 1 || t == TilingSingle {
		return 1
	}
	return n
}

// Fits reports whether n items of w x h lay out within limit pixels. It
// divides instead of multiplying so huge dimensions cannot wrap around.
func (t Tiling) Fits(w, h, n, limit int) bool {
	return fitsPixels(w, h, t.tiles(n), limit)
}

func fitsPixels(w, h, tiles, limit int) bool {
	if w <= 0 || h <= 0 || tiles <= 0 || limit <= 0 {
		return false
	}
	if w > limit/h {
		return false
	}
	return tiles <= limit/(w*h)
}

// CanvasSize is the destination size for n items of w x h. Callers check
// Fits first; the products are not overflow-checked here.
func (t Tiling) CanvasSize(w, h, n int) (int, int) {
	n = t.tiles(n)
	switch t {
	case TilingHorizontal:
		return w * n, h
	case TilingVertical:
		return w, h * n
	default:
		return w, h
	}
}

// Slot is the top-left corner of item i.
func (t Tiling) Slot(i, w, h int) (int, int) {
	switch t {
	case TilingHorizontal:
		return i * w, 0
	case TilingVertical:
		return 0, i * h
	default:
		return 0, 0
	}
}
