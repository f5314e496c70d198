package journal

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	cutoffs []time.Time
	n       int64
	err     error
}

func (f *fakeStore) Record(context.Context, Entry) error { return nil }
func (f *fakeStore) Get(context.Context, string) (*Entry, error) { return nil, nil }
func (f *fakeStore) ListRecent(context.Context, int) ([]Entry, error) { return nil, nil }
func (f *fakeStore) PruneBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.n, f.err
}

func TestPrunerRunOnceUsesRetention(t *testing.T) {
	fs := &fakeStore{n: 4}
	p := NewPruner(fs, 2*time.Hour, "@hourly", nil)
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	n, err := p.RunOnce(context.Background())
	if err != nil || n != 4 {
		t.Fatalf("run once: %d %v", n, err)
	}
	if len(fs.cutoffs) != 1 || !fs.cutoffs[0].Equal(now.Add(-2*time.Hour)) {
		t.Fatalf("unexpected cutoff: %v", fs.cutoffs)
	}
	st := p.StatsSnapshot()
	if st.RunsTotal != 1 || st.PrunedTotal != 4 || st.RunErrorsTotal != 0 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if st.LastRunAtUTC == nil || !st.LastRunAtUTC.Equal(now) {
		t.Fatalf("unexpected last run: %v", st.LastRunAtUTC)
	}
}

func TestPrunerCountsErrors(t *testing.T) {
	fs := &fakeStore{err: errors.New("disk full")}
	p := NewPruner(fs, time.Hour, "@hourly", nil)
	if _, err := p.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if st := p.StatsSnapshot(); st.RunErrorsTotal != 1 || st.PrunedTotal != 0 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestPrunerStartStop(t *testing.T) {
	p := NewPruner(&fakeStore{}, time.Hour, "@every 1h", nil)
	if err := p.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("second start: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := p.Stop(ctx); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestPrunerRejectsBadSchedule(t *testing.T) {
	p := NewPruner(&fakeStore{}, time.Hour, "not a schedule", nil)
	if err := p.Start(); err == nil {
		t.Fatalf("expected schedule error")
	}
}
