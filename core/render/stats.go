package render

import (
	"sort"
	"sync"
	"time"
)

type OutcomeKey struct {
	Kind    string
	Outcome ErrorKind
}

type StatsSnapshot struct {
	Jobs            map[OutcomeKey]uint64
	SkippedTotal    uint64
	DurationSeconds float64
	LastJobAtUTC    *time.Time
}

// Keys returns the job counters in a stable order.
func (s StatsSnapshot) Keys() []OutcomeKey {
	keys := make([]OutcomeKey, 0, len(s.Jobs))
	for k := range s.Jobs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}
		return keys[i].Outcome < keys[j].Outcome
	})
	return keys
}

// Stats counts finished jobs by kind and outcome. Safe for concurrent use.
type Stats struct {
	mu       sync.Mutex
	jobs     map[OutcomeKey]uint64
	skipped  uint64
	duration time.Duration
	last     time.Time
}

func NewStats() *Stats {
	return &Stats{jobs: map[OutcomeKey]uint64{}}
}

func (s *Stats) Observe(out Output, err error) {
	if s == nil {
		return
	}
	key := OutcomeKey{Kind: out.Kind.String(), Outcome: ClassifyError(err)}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[key]++
	s.skipped += uint64(len(out.Skipped))
	s.duration += out.Duration
	s.last = time.Now().UTC()
}

func (s *Stats) StatsSnapshot() StatsSnapshot {
	if s == nil {
		return StatsSnapshot{Jobs: map[OutcomeKey]uint64{}}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := StatsSnapshot{
		Jobs:            make(map[OutcomeKey]uint64, len(s.jobs)),
		SkippedTotal:    s.skipped,
		DurationSeconds: s.duration.Seconds(),
	}
	for k, v := range s.jobs {
		snap.Jobs[k] = v
	}
	if !s.last.IsZero() {
		t := s.last
		snap.LastJobAtUTC = &t
	}
	return snap
}
