package resolver

import (
	"sync"
	"time"

	"github.com/alexanderramin/pathfinder/internal/matcher"
	"go.uber.org/zap"
)

type TraceKind string

const (
	TraceFuzzyMatch TraceKind = "fuzzy_match"
	TraceUnresolved TraceKind = "unresolved"
	// TraceFallback marks a reference that matched nothing and was given the
	// fallback pathway instead.
	TraceFallback TraceKind = "fallback"
)

// TraceEvent records a heuristic or failed resolution for later audit.
type TraceEvent struct {
	Kind      TraceKind
	Attempted []string
	Specialty string
	PathwayID string
	Rule      matcher.Rule
	Trigger   string
	At        time.Time
}

// Tracer receives resolution diagnostics. Implementations must not panic;
// the resolver ignores them for control flow.
type Tracer interface {
	Trace(event TraceEvent)
}

// NopTracer discards all events.
type NopTracer struct{}

func (NopTracer) Trace(TraceEvent) {}

// ZapTracer writes events as structured log lines.
type ZapTracer struct {
	logger *zap.Logger
}

func NewZapTracer(logger *zap.Logger) *ZapTracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTracer{logger: logger.Named("resolver")}
}

func (t *ZapTracer) Trace(e TraceEvent) {
	fields := []zap.Field{
		zap.String("kind", string(e.Kind)),
		zap.Strings("attempted", e.Attempted),
		zap.String("specialty", e.Specialty),
	}
	if e.PathwayID != "" {
		fields = append(fields,
			zap.String("pathway_id", e.PathwayID),
			zap.String("rule", string(e.Rule)),
			zap.String("trigger", e.Trigger),
		)
	}
	if e.Kind == TraceUnresolved || e.Kind == TraceFallback {
		t.logger.Warn("pathway_resolution", fields...)
		return
	}
	t.logger.Info("pathway_resolution", fields...)
}

// RecorderTracer keeps the most recent events in memory so operators can
// inspect silently ambiguous matches. Safe for concurrent use.
type RecorderTracer struct {
	mu       sync.Mutex
	capacity int
	events   []TraceEvent
}

func NewRecorderTracer(capacity int) *RecorderTracer {
	if capacity <= 0 {
		capacity = 256
	}
	return &RecorderTracer{capacity: capacity}
}

func (r *RecorderTracer) Trace(e TraceEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == r.capacity {
		copy(r.events, r.events[1:])
		r.events = r.events[:len(r.events)-1]
	}
	r.events = append(r.events, e)
}

// Events returns a snapshot of recorded events, oldest first.
func (r *RecorderTracer) Events() []TraceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TraceEvent, len(r.events))
	copy(out, r.events)
	return out
}

// MultiTracer fans events out to several tracers.
type MultiTracer []Tracer

func (m MultiTracer) Trace(e TraceEvent) {
	for _, t := range m {
		if t != nil {
			t.Trace(e)
		}
	}
}
