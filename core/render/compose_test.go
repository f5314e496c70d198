package render

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"chartd/core/charts"
)

// squareChart paints an opaque red 10x10 square in the tile corner.
type squareChart struct {
	disposed *int
	fail     bool
}

func (c *squareChart) Draw(s *Surface) error {
	if c.fail {
		return errors.New("draw exploded")
	}
	dc := s.Context()
	dc.SetRGBA(1, 0, 0, 1)
	dc.DrawRectangle(0, 0, 10, 10)
	return dc.Fill()
}

func (c *squareChart) Dispose() {
	if c.disposed != nil {
		*c.disposed++
	}
}

func testComposer(disposed *int, fail bool) *Composer {
	c := NewComposer(DefaultTheme(), nil)
	c.newChart = func(cfg charts.Config, theme Theme) (Chart, error) {
		return &squareChart{disposed: disposed, fail: fail}, nil
	}
	return c
}

func barItems(n int) []charts.Item {
	items := make([]charts.Item, n)
	for i := range items {
		items[i] = charts.Item{
			Kind:     charts.KindBar,
			Subtype:  "bar",
			Labels:   []string{"a", "b"},
			Datasets: []charts.Dataset{{Label: "x", Data: []float64{1, 2}}},
		}
	}
	return items
}

var red = color.RGBA{R: 255, A: 255}

func TestComposeHorizontalBars(t *testing.T) {
	disposed := 0
	c := testComposer(&disposed, false)
	res, err := c.Compose(context.Background(), Job{ID: "t", Tiling: TilingHorizontal, Width: 300, Height: 200, Items: barItems(3)})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	defer res.Release()
	if res.Surface.Width() != 900 || res.Surface.Height() != 200 {
		t.Fatalf("expected 900x200, got %dx%d", res.Surface.Width(), res.Surface.Height())
	}
	img := res.Surface.Snapshot()
	for _, x := range []int{5, 305, 605} {
		if got := img.RGBAAt(x, 5); !near(got, red) {
			t.Fatalf("expected square at x=%d, got %v", x, got)
		}
	}
	if got := img.RGBAAt(15, 5); !near(got, bgPixel) {
		t.Fatalf("expected background at (15,5), got %v", got)
	}
	if got := img.RGBAAt(299, 199); !near(got, bgPixel) {
		t.Fatalf("expected background at tile edge, got %v", got)
	}
	if disposed != 3 {
		t.Fatalf("expected 3 disposals, got %d", disposed)
	}
}

func TestComposeVerticalWells(t *testing.T) {
	c := testComposer(nil, false)
	items := []charts.Item{
		{Kind: charts.KindWell, Datasets: []charts.Dataset{{Data: []float64{0.1}}}},
		{Kind: charts.KindWell, Datasets: []charts.Dataset{{Data: []float64{0.2}}}},
	}
	res, err := c.Compose(context.Background(), Job{Tiling: TilingVertical, Width: 100, Height: 50, Items: items})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	defer res.Release()
	if res.Surface.Width() != 100 || res.Surface.Height() != 100 {
		t.Fatalf("expected 100x100, got %dx%d", res.Surface.Width(), res.Surface.Height())
	}
	if got := res.Surface.Snapshot().RGBAAt(5, 55); !near(got, red) {
		t.Fatalf("expected second square at y=50, got %v", got)
	}
}

func TestComposeSkipsUnsupportedItem(t *testing.T) {
	c := testComposer(nil, false)
	items := barItems(3)
	items[1] = charts.Item{Kind: charts.KindUnknown, Subtype: "pie"}
	res, err := c.Compose(context.Background(), Job{Tiling: TilingHorizontal, Width: 50, Height: 40, Items: items})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	defer res.Release()
	if len(res.Skipped) != 1 || res.Skipped[0].Index != 1 || res.Skipped[0].Subtype != "pie" {
		t.Fatalf("unexpected skipped: %+v", res.Skipped)
	}
	if !errors.Is(res.Skipped[0].Err, charts.ErrUnsupportedChartType) {
		t.Fatalf("expected ErrUnsupportedChartType, got %v", res.Skipped[0].Err)
	}
	img := res.Surface.Snapshot()
	for y := 0; y < 40; y += 7 {
		for x := 50; x < 100; x += 7 {
			if got := img.RGBAAt(x, y); !near(got, bgPixel) {
				t.Fatalf("skipped slot pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
	if got := img.RGBAAt(105, 5); !near(got, red) {
		t.Fatalf("expected third item drawn, got %v", got)
	}
}

func TestComposeNeverLeavesTransparentPixels(t *testing.T) {
	c := testComposer(nil, false)
	res, err := c.Compose(context.Background(), Job{Tiling: TilingHorizontal, Width: 30, Height: 20, Items: barItems(2)})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	defer res.Release()
	img := res.Surface.Snapshot()
	for y := 0; y < 20; y++ {
		for x := 0; x < 60; x++ {
			if a := img.RGBAAt(x, y).A; a < 254 {
				t.Fatalf("pixel (%d,%d) has alpha %d", x, y, a)
			}
		}
	}
}

func TestComposePainterFailureAborts(t *testing.T) {
	disposed := 0
	c := testComposer(&disposed, true)
	res, err := c.Compose(context.Background(), Job{Tiling: TilingHorizontal, Width: 30, Height: 20, Items: barItems(2)})
	if !errors.Is(err, ErrRenderFailed) {
		t.Fatalf("expected ErrRenderFailed, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected no result on failure")
	}
	if disposed != 1 {
		t.Fatalf("expected the failing chart to be disposed, got %d", disposed)
	}
}

func TestComposeHonorsCancellation(t *testing.T) {
	c := testComposer(nil, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Compose(ctx, Job{Tiling: TilingHorizontal, Width: 30, Height: 20, Items: barItems(2)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestComposeRejectsBadDimensions(t *testing.T) {
	c := testComposer(nil, false)
	_, err := c.Compose(context.Background(), Job{Tiling: TilingSingle, Width: 0, Height: 20, Items: barItems(1)})
	if !errors.Is(err, charts.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestComposeRejectsOversizedCanvas(t *testing.T) {
	disposed := 0
	c := testComposer(&disposed, false)
	job := Job{Tiling: TilingHorizontal, Width: 1 << 32, Height: 1 << 32, Items: barItems(2)}
	if _, err := c.Compose(context.Background(), job); !errors.Is(err, charts.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if disposed != 0 {
		t.Fatalf("no painter should run, %d disposed", disposed)
	}
}
