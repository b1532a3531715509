// Package progress computes per-pathway completion from canonical milestone
// records and user-authored custom milestones.
package progress

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/resolver"
)

// MaxNextSteps caps the number of missing requirements surfaced as next steps.
const MaxNextSteps = 3

// Result is the progress of one pathway reference held by a user.
type Result struct {
	Reference   string
	Pathway     *domain.PathwayDefinition
	Resolved    bool
	MatchedFrom resolver.MatchSource

	Completed []domain.PathwayRequirement
	Missing   []domain.PathwayRequirement
	NextSteps []domain.PathwayRequirement

	CustomMilestones     []domain.CustomMilestone
	CustomCompletedCount int

	CompletedCount  int
	TotalRequired   int
	PercentComplete int
}

// PathwayResolver is the subset of the resolver the calculator needs.
type PathwayResolver interface {
	Resolve(in resolver.Input) resolver.Result
}

// Calculator computes progress against a resolver's registry snapshot.
type Calculator struct {
	resolver PathwayResolver
}

func NewCalculator(r PathwayResolver) *Calculator {
	return &Calculator{resolver: r}
}

// Compute returns one result per profile pathway reference, in order. Missing
// or empty inputs yield empty or zero results, never an error.
func (c *Calculator) Compute(profile domain.UserProfile, records []domain.UserMilestoneRecord) []Result {
	results := make([]Result, 0, len(profile.PathwayRefs))
	for _, ref := range profile.PathwayRefs {
		results = append(results, c.computeOne(ref, profile.CustomMilestones, records))
	}
	return results
}

func (c *Calculator) computeOne(ref string, custom []domain.CustomMilestone, records []domain.UserMilestoneRecord) Result {
	res := c.resolver.Resolve(resolver.Input{PathwayIDs: []string{ref}})
	if !res.Resolved() {
		return placeholder(ref)
	}

	out := Result{
		Reference:   ref,
		Pathway:     res.Pathway,
		Resolved:    true,
		MatchedFrom: res.MatchedFrom,
	}

	required := RequiredRequirements(res.Pathway)
	for _, req := range required {
		if IsSatisfied(req, records) {
			out.Completed = append(out.Completed, req)
		} else {
			out.Missing = append(out.Missing, req)
		}
	}

	for _, m := range custom {
		if !m.BelongsTo(ref, res.Pathway.Name) {
			continue
		}
		out.CustomMilestones = append(out.CustomMilestones, m)
		if m.Completed {
			out.CustomCompletedCount++
		}
	}

	out.CompletedCount = len(out.Completed) + out.CustomCompletedCount
	out.TotalRequired = len(required) + len(out.CustomMilestones)
	out.PercentComplete = Percent(out.CompletedCount, out.TotalRequired)

	n := min(MaxNextSteps, len(out.Missing))
	out.NextSteps = out.Missing[:n:n]
	return out
}

// RequiredRequirements returns the required requirements of p sorted by
// Order, ties kept in definition order.
func RequiredRequirements(p *domain.PathwayDefinition) []domain.PathwayRequirement {
	var required []domain.PathwayRequirement
	for _, r := range p.Requirements {
		if r.IsRequired {
			required = append(required, r)
		}
	}
	sort.SliceStable(required, func(i, j int) bool {
		return required[i].Order < required[j].Order
	})
	return required
}

// IsSatisfied reports whether any done record fulfils req, checking the
// milestone id first, then the exact name, then the alternatives.
func IsSatisfied(req domain.PathwayRequirement, records []domain.UserMilestoneRecord) bool {
	if req.DBID != "" {
		for _, r := range records {
			if r.MilestoneID == req.DBID && r.IsDone() {
				return true
			}
		}
	}
	for _, r := range records {
		if r.MilestoneName != "" && r.MilestoneName == req.Name && r.IsDone() {
			return true
		}
	}
	for _, r := range records {
		if r.IsDone() && req.SatisfiedBy(r.MilestoneName) {
			return true
		}
	}
	return false
}

// Percent returns completed/total as a rounded percentage, or 0 when total
// is zero.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// placeholder stands in for a reference that matched no pathway.
func placeholder(ref string) Result {
	return Result{
		Reference: ref,
		Pathway: &domain.PathwayDefinition{
			ID:   PlaceholderID(ref),
			Name: ref,
		},
	}
}

// PlaceholderID derives a stable id for an unresolved reference.
func PlaceholderID(ref string) string {
	var b strings.Builder
	b.WriteString("unresolved-")
	dash := true
	for _, r := range strings.ToLower(strings.TrimSpace(ref)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
