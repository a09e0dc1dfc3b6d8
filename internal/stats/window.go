// Package stats keeps rolling-window latency figures for haiku generation.
package stats

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at     time.Time
	ms     int64
	failed bool
}

// Snapshot aggregates the samples currently inside the window. Latency
// figures cover successful generations only.
type Snapshot struct {
	Count    int     `json:"count"`
	Failures int     `json:"failures"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

// Window tracks recent generation outcomes within a rolling time window.
type Window struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

// NewWindow keeps samples younger than maxAge, an hour when maxAge <= 0.
func NewWindow(maxAge time.Duration) *Window {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Window{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds a successful generation that took ms milliseconds.
func (s *Window) Record(ms int64) {
	s.add(ms, false)
}

// RecordFailure adds a generation that gave up after ms milliseconds.
func (s *Window) RecordFailure(ms int64) {
	s.add(ms, true)
}

func (s *Window) add(ms int64, failed bool) {
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{at: now, ms: ms, failed: failed})
}

func (s *Window) Snapshot() Snapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)

	var snap Snapshot
	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		if sm.failed {
			snap.Failures++
			continue
		}
		values = append(values, sm.ms)
		sum += sm.ms
	}
	if len(values) == 0 {
		return snap
	}
	slices.Sort(values)

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

func (s *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	s.samples = slices.DeleteFunc(s.samples, func(sm sample) bool {
		return sm.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}

	index := float64(len(sorted)-1) * pct / 100
	lower := int(index)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*(index-float64(lower))
}
