// Package resolver maps a bag of heterogeneous pathway references to one
// canonical pathway using a fixed priority order.
package resolver

import (
	"strings"
	"time"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/matcher"
	"github.com/alexanderramin/pathfinder/internal/registry"
)

// MatchSource records which input field and strategy produced a match.
type MatchSource string

const (
	MatchedNone       MatchSource = ""
	FromPathwayIDs    MatchSource = "pathway_ids"
	FromPathwayID     MatchSource = "pathway_id"
	FromNameToID      MatchSource = "name_to_id"
	FromDirectName    MatchSource = "direct_name"
	FromFuzzyName     MatchSource = "fuzzy_name"
	FromTrainingPaths MatchSource = "training_paths"
	FromFallback      MatchSource = "fallback"
)

// Input is the bag of references a caller holds for one pathway. Empty
// strings are treated as absent.
type Input struct {
	PathwayIDs    []string
	PathwayID     string
	PathwayName   string
	TrainingPaths []string
	Specialty     string
	UseFallback   bool
}

func (in Input) attempted() []string {
	var out []string
	add := func(vals ...string) {
		for _, v := range vals {
			if v != "" {
				out = append(out, v)
			}
		}
	}
	add(in.PathwayIDs...)
	add(in.PathwayID, in.PathwayName)
	add(in.TrainingPaths...)
	return out
}

// Result is the outcome of a resolution. An unresolved result has a nil
// Pathway and an empty MatchedFrom; it is not an error.
type Result struct {
	Pathway     *domain.PathwayDefinition
	MatchedFrom MatchSource
	MatchedVia  string
}

// Resolved reports whether a pathway was found.
func (r Result) Resolved() bool {
	return r.Pathway != nil
}

// Resolver resolves references against one registry snapshot. It holds no
// mutable state of its own and is safe for concurrent use when its Tracer is.
type Resolver struct {
	reg        *registry.Registry
	tracer     Tracer
	fallbackID string
	now        func() time.Time
}

type Option func(*Resolver)

func WithTracer(t Tracer) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithFallbackID selects the registry pathway used when UseFallback is set.
func WithFallbackID(id string) Option {
	return func(r *Resolver) {
		if id != "" {
			r.fallbackID = id
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

func New(reg *registry.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		reg:        reg,
		tracer:     NopTracer{},
		fallbackID: matcher.ServicePathwayID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve applies the priority order, first success wins:
//  1. each of PathwayIDs, in order
//  2. PathwayID
//  3. PathwayName via legacy table, exact name, then fuzzy matcher
//  4. each of TrainingPaths, by id then by the same name chain
//  5. the fallback pathway when UseFallback is set
func (r *Resolver) Resolve(in Input) Result {
	for _, id := range in.PathwayIDs {
		if p, ok := r.reg.ByID(id); ok {
			return Result{Pathway: clone(p), MatchedFrom: FromPathwayIDs, MatchedVia: id}
		}
	}

	if p, ok := r.reg.ByID(in.PathwayID); ok {
		return Result{Pathway: clone(p), MatchedFrom: FromPathwayID, MatchedVia: in.PathwayID}
	}

	if in.PathwayName != "" {
		if res, ok := r.resolveName(in.PathwayName, in.Specialty); ok {
			return res
		}
	}

	for _, tp := range in.TrainingPaths {
		if tp == "" {
			continue
		}
		if p, ok := r.reg.ByID(tp); ok {
			return Result{Pathway: clone(p), MatchedFrom: FromTrainingPaths, MatchedVia: tp}
		}
		if res, ok := r.resolveName(tp, in.Specialty); ok {
			return res
		}
	}

	event := TraceEvent{
		Kind:      TraceUnresolved,
		Attempted: in.attempted(),
		Specialty: in.Specialty,
		At:        r.now(),
	}
	if in.UseFallback {
		p := r.fallback()
		event.Kind = TraceFallback
		event.PathwayID = p.ID
		r.tracer.Trace(event)
		return Result{Pathway: p, MatchedFrom: FromFallback, MatchedVia: r.fallbackID}
	}

	r.tracer.Trace(event)
	return Result{}
}

// ResolveName runs only the name chain: legacy table, exact name, fuzzy.
func (r *Resolver) ResolveName(name, specialty string) Result {
	if res, ok := r.resolveName(name, specialty); ok {
		return res
	}
	r.tracer.Trace(TraceEvent{
		Kind:      TraceUnresolved,
		Attempted: []string{name},
		Specialty: specialty,
		At:        r.now(),
	})
	return Result{}
}

func (r *Resolver) resolveName(name, specialty string) (Result, bool) {
	if id, ok := legacyNames[matcher.Normalize(name)]; ok {
		if p, ok := r.reg.ByID(id); ok {
			return Result{Pathway: tag(p, name, ""), MatchedFrom: FromNameToID, MatchedVia: name}, true
		}
	}

	if p, ok := r.reg.ByNameFold(name); ok {
		return Result{Pathway: tag(p, name, ""), MatchedFrom: FromDirectName, MatchedVia: name}, true
	}

	m := matcher.Find(r.reg.All(), name, specialty)
	if !m.Found() {
		return Result{}, false
	}
	r.tracer.Trace(TraceEvent{
		Kind:      TraceFuzzyMatch,
		Attempted: []string{name},
		Specialty: specialty,
		PathwayID: m.Pathway.ID,
		Rule:      m.Rule,
		Trigger:   m.Trigger,
		At:        r.now(),
	})

	var inSpecialty string
	if m.Rule == matcher.RuleSpecialty {
		inSpecialty = strings.TrimSpace(specialty)
	}
	return Result{Pathway: tag(m.Pathway, name, inSpecialty), MatchedFrom: FromFuzzyName, MatchedVia: name}, true
}

func (r *Resolver) fallback() *domain.PathwayDefinition {
	if p, ok := r.reg.ByID(r.fallbackID); ok {
		return clone(p)
	}
	return DefaultFallbackPathway()
}

// tag returns a copy of p carrying the matching string when it differs
// from the canonical name.
func tag(p *domain.PathwayDefinition, via, specialty string) *domain.PathwayDefinition {
	if via == p.Name {
		return clone(p)
	}
	return p.WithProvenance(via, specialty)
}

func clone(p *domain.PathwayDefinition) *domain.PathwayDefinition {
	return p.Clone()
}
