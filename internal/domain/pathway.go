package domain

import (
	"fmt"
	"slices"
	"time"
)

// PathwayDefinition is a canonical career-qualification program as held by
// the in-memory registry.
type PathwayDefinition struct {
	ID                string
	Name              string
	Description       string
	EstimatedDuration string
	TargetRole        string
	Country           string
	Requirements      []PathwayRequirement

	// Provenance of a name-based resolution. Only set on copies returned by
	// the resolver, never on registry entries.
	MatchedVia       string
	MatchedSpecialty string
}

// PathwayRequirement is one milestone belonging to a pathway.
type PathwayRequirement struct {
	Name          string
	Category      RequirementCategory
	IsRequired    bool
	Order         int
	Description   string
	EvidenceTypes []string
	ResourceURL   string
	Alternatives  []string
	DBID          string

	EstimatedDuration  string
	CostEstimate       string
	VerificationStatus string
	LastVerifiedAt     *time.Time
}

// SatisfiedBy reports whether a milestone named name fulfils the requirement,
// either by exact name or through one of its alternatives.
func (r PathwayRequirement) SatisfiedBy(name string) bool {
	if name == "" {
		return false
	}
	return name == r.Name || slices.Contains(r.Alternatives, name)
}

// WithProvenance returns a copy of p tagged with the string that matched it.
func (p PathwayDefinition) WithProvenance(via, specialty string) *PathwayDefinition {
	cp := p.Clone()
	cp.MatchedVia = via
	cp.MatchedSpecialty = specialty
	return cp
}

// Clone returns a deep copy of p. Registry entries are shared between
// callers, so anything handed out of the registry is cloned first.
func (p PathwayDefinition) Clone() *PathwayDefinition {
	if p.Requirements != nil {
		reqs := make([]PathwayRequirement, len(p.Requirements))
		for i, r := range p.Requirements {
			r.EvidenceTypes = slices.Clone(r.EvidenceTypes)
			r.Alternatives = slices.Clone(r.Alternatives)
			if r.LastVerifiedAt != nil {
				at := *r.LastVerifiedAt
				r.LastVerifiedAt = &at
			}
			reqs[i] = r
		}
		p.Requirements = reqs
	}
	return &p
}

// Provenance renders the match provenance for display, or "" when the
// pathway was not matched through an alternate name.
func (p *PathwayDefinition) Provenance() string {
	if p == nil || p.MatchedVia == "" {
		return ""
	}
	if p.MatchedSpecialty != "" {
		return fmt.Sprintf("matched via '%s' in %s", p.MatchedVia, p.MatchedSpecialty)
	}
	return fmt.Sprintf("matched via '%s'", p.MatchedVia)
}

// RequiredCount returns the number of requirements flagged as required.
func (p *PathwayDefinition) RequiredCount() int {
	n := 0
	for _, r := range p.Requirements {
		if r.IsRequired {
			n++
		}
	}
	return n
}
