package journal

import (
	"context"
	"time"

	"chartd/core/render"
	"chartd/core/utils"
)

// Recorder writes one entry per finished render. A nil store disables it.
type Recorder struct {
	store  Store
	logger *utils.Logger
}

func NewRecorder(store Store, logger *utils.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

func EntryFromOutput(out render.Output, err error) Entry {
	e := Entry{
		ID:         out.JobID,
		Kind:       out.Kind.String(),
		Items:      out.Items,
		Width:      out.Width,
		Height:     out.Height,
		DurationMS: out.Duration.Milliseconds(),
		Outcome:    string(render.ClassifyError(err)),
		CreatedAt:  time.Now().UTC(),
	}
	for _, s := range out.Skipped {
		e.Skipped = append(e.Skipped, s.Index)
	}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// Record stores the job unless it was rejected before an id was assigned.
func (r *Recorder) Record(ctx context.Context, out render.Output, renderErr error) {
	if r == nil || r.store == nil || out.JobID == "" {
		return
	}
	if err := r.store.Record(ctx, EntryFromOutput(out, renderErr)); err != nil {
		r.logger.Errorf("journal record job=%s: %v", out.JobID, err)
	}
}
