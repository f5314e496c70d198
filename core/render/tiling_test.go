package render

import (
	"testing"

	"chartd/core/charts"
)

func TestTilingCanvasSize(t *testing.T) {
	cases := []struct {
		tiling Tiling
		n      int
		w, h   int
	}{
		{TilingHorizontal, 3, 900, 200},
		{TilingHorizontal, 1, 300, 200},
		{TilingVertical, 4, 300, 800},
		{TilingSingle, 1, 300, 200},
		{TilingSingle, 5, 300, 200},
	}
	for _, tc := range cases {
		w, h := tc.tiling.CanvasSize(300, 200, tc.n)
		if w != tc.w || h != tc.h {
			t.Fatalf("%s n=%d: expected %dx%d, got %dx%d", tc.tiling, tc.n, tc.w, tc.h, w, h)
		}
	}
}

func TestTilingSlot(t *testing.T) {
	if x, y := TilingHorizontal.Slot(1, 300, 200); x != 300 || y != 0 {
		t.Fatalf("horizontal slot 1: got (%d,%d)", x, y)
	}
	if x, y := TilingVertical.Slot(2, 300, 200); x != 0 || y != 400 {
		t.Fatalf("vertical slot 2: got (%d,%d)", x, y)
	}
	if x, y := TilingSingle.Slot(0, 300, 200); x != 0 || y != 0 {
		t.Fatalf("single slot: got (%d,%d)", x, y)
	}
}

func TestTilingForKind(t *testing.T) {
	want := map[charts.Kind]Tiling{
		charts.KindBar:   TilingHorizontal,
		charts.KindWell:  TilingVertical,
		charts.KindRadar: TilingSingle,
	}
	for kind, tiling := range want {
		got, ok := TilingFor(kind)
		if !ok || got != tiling {
			t.Fatalf("%s: expected %s, got %s", kind, tiling, got)
		}
	}
	if _, ok := TilingFor(charts.KindUnknown); ok {
		t.Fatalf("expected unknown kind to have no tiling")
	}
}

func TestTilingFits(t *testing.T) {
	cases := []struct {
		tiling  Tiling
		w, h, n int
		limit   int
		want    bool
	}{
		{TilingHorizontal, 300, 200, 2, 120000, true},
		{TilingHorizontal, 300, 200, 3, 120000, false},
		{TilingSingle, 300, 200, 3, 60000, true},
		{TilingVertical, 1 << 32, 1 << 32, 1, 1 << 27, false},
		{TilingVertical, 1 << 31, 2, 1 << 31, 1 << 27, false},
		{TilingHorizontal, 0, 10, 1, 100, false},
		{TilingHorizontal, 10, 10, 1, 0, false},
	}
	for _, tc := range cases {
		if got := tc.tiling.Fits(tc.w, tc.h, tc.n, tc.limit); got != tc.want {
			t.Fatalf("%s %dx%d x%d within %d: expected %v, got %v", tc.tiling, tc.w, tc.h, tc.n, tc.limit, tc.want, got)
		}
	}
}
