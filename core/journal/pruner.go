package journal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"chartd/core/utils"
	"github.com/robfig/cron/v3"
)

type PrunerStats struct {
	RunsTotal      uint64     `json:"runs_total"`
	RunErrorsTotal uint64     `json:"run_errors_total"`
	PrunedTotal    uint64     `json:"pruned_total"`
	LastRunAtUTC   *time.Time `json:"last_run_at_utc,omitempty"`
}

// Pruner deletes journal rows older than the retention window on a cron
// schedule.
type Pruner struct {
	store     Store
	retention time.Duration
	schedule  string
	logger    *utils.Logger
	now       func() time.Time

	mu      sync.Mutex
	cron    *cron.Cron
	running bool

	runs      atomic.Uint64
	runErrors atomic.Uint64
	pruned    atomic.Uint64
	lastRunNs atomic.Int64
}

func NewPruner(store Store, retention time.Duration, schedule string, logger *utils.Logger) *Pruner {
	return &Pruner{
		store:     store,
		retention: retention,
		schedule:  schedule,
		logger:    logger,
		now:       time.Now,
	}
}

func (p *Pruner) Start() error {
	if p == nil || p.store == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(p.schedule, func() {
		_, _ = p.RunOnce(context.Background())
	}); err != nil {
		return err
	}
	c.Start()
	p.cron = c
	p.running = true
	return nil
}

// Stop waits for a running prune to finish or ctx to expire.
func (p *Pruner) Stop(ctx context.Context) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	c := p.cron
	p.cron = nil
	p.running = false
	p.mu.Unlock()
	done := c.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pruner) RunOnce(ctx context.Context) (int64, error) {
	if p == nil || p.store == nil {
		return 0, nil
	}
	now := p.now().UTC()
	n, err := p.store.PruneBefore(ctx, now.Add(-p.retention))
	p.runs.Add(1)
	p.lastRunNs.Store(now.UnixNano())
	if err != nil {
		p.runErrors.Add(1)
		p.logger.Errorf("journal prune failed: %v", err)
		return 0, err
	}
	if n > 0 {
		p.pruned.Add(uint64(n))
		p.logger.Printf("journal pruned %d entries older than %s", n, p.retention)
	}
	return n, nil
}

func (p *Pruner) StatsSnapshot() PrunerStats {
	if p == nil {
		return PrunerStats{}
	}
	ns := p.lastRunNs.Load()
	var last *time.Time
	if ns > 0 {
		t := time.Unix(0, ns).UTC()
		last = &t
	}
	return PrunerStats{
		RunsTotal:      p.runs.Load(),
		RunErrorsTotal: p.runErrors.Load(),
		PrunedTotal:    p.pruned.Load(),
		LastRunAtUTC:   last,
	}
}
