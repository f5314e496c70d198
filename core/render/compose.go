package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chartd/core/charts"
	"chartd/core/utils"
	"github.com/gofrs/uuid/v5"
	"github.com/gogpu/gg"
)

// Job is one request's worth of charts sharing a tiling and a tile size.
type Job struct {
	ID     string
	Kind   charts.Kind
	Tiling Tiling
	Width  int
	Height int
	Items  []charts.Item
}

func NewJobID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Sprintf("job-%d", time.Now().UnixNano())
	}
	return id.String()
}

type SkippedItem struct {
	Index   int
	Subtype string
	Err     error
}

// Result owns the destination surface; the caller encodes and releases it.
type Result struct {
	Surface *Surface
	Skipped []SkippedItem
}

func (r *Result) SkippedIndexes() []int {
	if r == nil {
		return nil
	}
	out := make([]int, len(r.Skipped))
	for i, s := range r.Skipped {
		out[i] = s.Index
	}
	return out
}

func (r *Result) Release() {
	if r == nil {
		return
	}
	r.Surface.Release()
}

type chartFactory func(cfg charts.Config, theme Theme) (Chart, error)

type Composer struct {
	theme    Theme
	logger   *utils.Logger
	newChart chartFactory
}

func NewComposer(theme Theme, logger *utils.Logger) *Composer {
	return &Composer{theme: theme, logger: logger, newChart: NewChart}
}

// Compose renders every item of job into its tile, in tiling order. Items with
// an unsupported kind leave a background-filled slot and are reported in
// Result.Skipped; any other failure releases everything and returns no image.
func (c *Composer) Compose(ctx context.Context, job Job) (*Result, error) {
	if job.Width <= 0 || job.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", charts.ErrMalformedInput, job.Width, job.Height)
	}
	if len(job.Items) == 0 {
		return nil, fmt.Errorf("%w: no chart items", charts.ErrMalformedInput)
	}
	if !job.Tiling.Fits(job.Width, job.Height, len(job.Items), MaxSurfacePixels) {
		return nil, fmt.Errorf("%w: %d tiles of %dx%d exceed %d pixels", charts.ErrMalformedInput, len(job.Items), job.Width, job.Height, MaxSurfacePixels)
	}
	cw, ch := job.Tiling.CanvasSize(job.Width, job.Height, len(job.Items))
	dest, err := NewSurface(cw, ch)
	if err != nil {
		return nil, err
	}
	ok := false
	defer func() {
		if !ok {
			dest.Release()
		}
	}()

	res := &Result{Surface: dest}
	bg := c.theme.background()
	for i, item := range job.Items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("job %s aborted at item %d: %w", job.ID, i, err)
		}
		x, y := job.Tiling.Slot(i, job.Width, job.Height)
		err := c.composeItem(dest, item, x, y, job.Width, job.Height, bg)
		if errors.Is(err, charts.ErrUnsupportedChartType) {
			c.logger.Printf("render: job=%s skip item=%d subtype=%q: %v", job.ID, i, item.Subtype, err)
			res.Skipped = append(res.Skipped, SkippedItem{Index: i, Subtype: item.Subtype, Err: err})
			if err := c.backfill(dest, x, y, job.Width, job.Height, bg); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, item.Subtype, err)
		}
	}
	ok = true
	return res, nil
}

func (c *Composer) composeItem(dest *Surface, item charts.Item, x, y, w, h int, bg gg.RGBA) error {
	cfg, err := charts.Configure(item)
	if err != nil {
		return err
	}
	chart, err := c.newChart(cfg, c.theme)
	if err != nil {
		return err
	}
	defer chart.Dispose()

	tile, err := NewSurface(w, h)
	if err != nil {
		return err
	}
	defer tile.Release()

	if err := chart.Draw(tile); err != nil {
		if errors.Is(err, ErrRenderFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	if err := tile.FillBehind(bg); err != nil {
		return err
	}
	return dest.Composite(tile, x, y)
}

// backfill paints an empty tile so skipped slots carry the background.
func (c *Composer) backfill(dest *Surface, x, y, w, h int, bg gg.RGBA) error {
	tile, err := NewSurface(w, h)
	if err != nil {
		return err
	}
	defer tile.Release()
	if err := tile.FillBehind(bg); err != nil {
		return err
	}
	return dest.Composite(tile, x, y)
}
