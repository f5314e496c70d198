package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"chartd/core/charts"
	"chartd/core/utils"
)

type Limits struct {
	MaxItems  int
	MaxPixels int
}

// pixelBudget is MaxPixels bounded by MaxSurfacePixels; zero means the cap.
func (l Limits) pixelBudget() int {
	if l.MaxPixels > 0 && l.MaxPixels < MaxSurfacePixels {
		return l.MaxPixels
	}
	return MaxSurfacePixels
}

// DecodeJob turns a request body and tile size into a job. The first item's
// subtype selects the tiling; an unknown one rejects the whole job.
func DecodeJob(body []byte, width, height int, limits Limits) (Job, error) {
	if width <= 0 || height <= 0 {
		return Job{}, fmt.Errorf("%w: width and height must be positive, got %dx%d", charts.ErrMalformedInput, width, height)
	}
	wire, err := decodeItems(body)
	if err != nil {
		return Job{}, err
	}
	if len(wire) == 0 {
		return Job{}, fmt.Errorf("%w: no chart items", charts.ErrMalformedInput)
	}
	top := wire[0].subtype()
	kind, ok := charts.ParseKind(top)
	if !ok {
		return Job{}, fmt.Errorf("%w: %q", ErrUnsupportedTopLevelType, top)
	}
	tiling, _ := TilingFor(kind)
	if tiling == TilingSingle && len(wire) != 1 {
		return Job{}, fmt.Errorf("%w: %s takes exactly one item, got %d", charts.ErrMalformedInput, kind, len(wire))
	}
	if limits.MaxItems > 0 && len(wire) > limits.MaxItems {
		return Job{}, fmt.Errorf("%w: %d items exceeds limit %d", charts.ErrMalformedInput, len(wire), limits.MaxItems)
	}
	budget := limits.pixelBudget()
	if !tiling.Fits(width, height, len(wire), budget) {
		return Job{}, fmt.Errorf("%w: %d %s tiles of %dx%d exceed %d pixels", charts.ErrMalformedInput, len(wire), tiling, width, height, budget)
	}
	job := Job{
		ID:     NewJobID(),
		Kind:   kind,
		Tiling: tiling,
		Width:  width,
		Height: height,
		Items:  make([]charts.Item, len(wire)),
	}
	for i, w := range wire {
		job.Items[i] = w.toItem()
	}
	return job, nil
}

// Output is an encoded job result.
type Output struct {
	JobID    string
	Kind     charts.Kind
	Items    int
	Width    int
	Height   int
	DataURI  string
	PNG      []byte
	Skipped  []SkippedItem
	Duration time.Duration
}

type Renderer struct {
	composer *Composer
	limits   Limits
	logger   *utils.Logger
}

func NewRenderer(theme Theme, limits Limits, logger *utils.Logger) *Renderer {
	return &Renderer{composer: NewComposer(theme, logger), limits: limits, logger: logger}
}

// Render decodes, composes and encodes one job. The destination surface is
// released before returning.
func (r *Renderer) Render(ctx context.Context, body []byte, width, height int) (Output, error) {
	start := time.Now()
	job, err := DecodeJob(body, width, height, r.limits)
	if err != nil {
		return Output{Duration: time.Since(start)}, err
	}
	return r.RenderJob(ctx, job)
}

func (r *Renderer) RenderJob(ctx context.Context, job Job) (Output, error) {
	start := time.Now()
	out := Output{JobID: job.ID, Kind: job.Kind, Items: len(job.Items)}
	out.Width, out.Height = job.Tiling.CanvasSize(job.Width, job.Height, len(job.Items))
	res, err := r.composer.Compose(ctx, job)
	if err != nil {
		out.Duration = time.Since(start)
		return out, err
	}
	defer res.Release()
	out.Skipped = res.Skipped
	out.DataURI, out.PNG, err = encode(res.Surface)
	out.Duration = time.Since(start)
	if err != nil {
		return out, err
	}
	r.logger.Debugf("render: job=%s kind=%s items=%d skipped=%d dur=%s", job.ID, job.Kind, len(job.Items), len(res.Skipped), out.Duration)
	return out, nil
}

func encode(s *Surface) (string, []byte, error) {
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return "", nil, err
	}
	raw := buf.Bytes()
	return EncodeDataURI(raw), raw, nil
}
