package hooks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Skryldev/grayscaler/core"
	apperrors "github.com/Skryldev/grayscaler/errors"
)

// StepStats aggregates the observations for one step name.
type StepStats struct {
	Calls  int64
	Errors int64
	Total  time.Duration
}

// InMemoryMetrics accumulates metrics in process; safe for concurrent use.
type InMemoryMetrics struct {
	mu    sync.Mutex
	steps map[string]StepStats
	kinds map[string]int64

	inputBytes atomic.Int64
}

func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		steps: make(map[string]StepStats),
		kinds: make(map[string]int64),
	}
}

func (m *InMemoryMetrics) RecordProcessingTime(step string, d time.Duration) {
	m.mu.Lock()
	s := m.steps[step]
	s.Calls++
	s.Total += d
	m.steps[step] = s
	m.mu.Unlock()
}

func (m *InMemoryMetrics) RecordThroughput(inputBytes int64) { m.inputBytes.Add(inputBytes) }

func (m *InMemoryMetrics) RecordError(step string, kind string) {
	m.mu.Lock()
	s := m.steps[step]
	s.Errors++
	m.steps[step] = s
	m.kinds[kind]++
	m.mu.Unlock()
}

// MetricsSnapshot is a point-in-time copy of InMemoryMetrics.
type MetricsSnapshot struct {
	Steps      map[string]StepStats
	ErrorKinds map[string]int64
	// InputBytes counts the input of successful conversions only.
	InputBytes int64
}

func (m *InMemoryMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Steps:      make(map[string]StepStats, len(m.steps)),
		ErrorKinds: make(map[string]int64, len(m.kinds)),
		InputBytes: m.inputBytes.Load(),
	}
	for k, v := range m.steps {
		snap.Steps[k] = v
	}
	for k, v := range m.kinds {
		snap.ErrorKinds[k] = v
	}
	return snap
}

// MetricsHook feeds step timings and failures into a MetricsCollector.
type MetricsHook struct {
	c core.MetricsCollector
}

func NewMetricsHook(c core.MetricsCollector) *MetricsHook { return &MetricsHook{c: c} }

func (h *MetricsHook) BeforeStep(context.Context, string, *core.ImageData) {}

func (h *MetricsHook) AfterStep(_ context.Context, step string, _ *core.ImageData, d time.Duration, err error) {
	h.c.RecordProcessingTime(step, d)
	if err != nil {
		h.c.RecordError(step, string(apperrors.KindOf(err)))
	}
}

var (
	_ core.Hook             = (*MetricsHook)(nil)
	_ core.MetricsCollector = (*InMemoryMetrics)(nil)
)
