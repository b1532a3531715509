package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/pathfinder/internal/domain"
)

// Source produces the flat pathway/milestone record set the registry is
// built from.
type Source interface {
	FetchPathwayRecords(ctx context.Context) ([]domain.PathwayRecord, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) ([]domain.PathwayRecord, error)

func (f SourceFunc) FetchPathwayRecords(ctx context.Context) ([]domain.PathwayRecord, error) {
	return f(ctx)
}

// Load fetches records from src and builds a registry. Fetch failures are
// returned unchanged apart from wrapping.
func Load(ctx context.Context, src Source) (*Registry, error) {
	records, err := src.FetchPathwayRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching pathway records: %w", err)
	}
	return Build(records)
}

// Build normalises persisted records into a registry. Inactive pathways and
// milestones are dropped, and requirements are ordered by Order with ties
// kept in source order.
func Build(records []domain.PathwayRecord) (*Registry, error) {
	reg := &Registry{
		pathways: make([]domain.PathwayDefinition, 0, len(records)),
		byID:     make(map[string]int, len(records)),
	}
	for _, rec := range records {
		if !domain.IsActive(rec.Status) {
			continue
		}
		if _, dup := reg.byID[rec.Code]; dup {
			return nil, fmt.Errorf("building registry: %w: %q", domain.ErrDuplicatePathwayID, rec.Code)
		}
		reg.byID[rec.Code] = len(reg.pathways)
		reg.pathways = append(reg.pathways, toDefinition(rec))
	}
	return reg, nil
}

func toDefinition(rec domain.PathwayRecord) domain.PathwayDefinition {
	def := domain.PathwayDefinition{
		ID:                rec.Code,
		Name:              rec.Name,
		Description:       rec.Description,
		EstimatedDuration: rec.EstimatedDuration,
		TargetRole:        rec.TargetRole,
	}
	if rec.Country != nil {
		def.Country = domain.CoalesceStr(rec.Country.Name, rec.Country.Code)
	}

	reqs := make([]domain.PathwayRequirement, 0, len(rec.Milestones))
	for _, m := range rec.Milestones {
		if !domain.IsActive(m.Status) {
			continue
		}
		reqs = append(reqs, toRequirement(m))
	}
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].Order < reqs[j].Order
	})
	def.Requirements = reqs
	return def
}

func toRequirement(m domain.MilestoneRecord) domain.PathwayRequirement {
	category := domain.CategoryTraining
	if m.Category != nil && m.Category.Name != "" {
		category = domain.RequirementCategory(m.Category.Name)
	}
	return domain.PathwayRequirement{
		Name:               m.Name,
		Category:           category,
		IsRequired:         m.IsRequired,
		Order:              m.Order,
		Description:        m.Description,
		EvidenceTypes:      m.EvidenceTypes,
		ResourceURL:        m.ResourceURL,
		Alternatives:       m.Alternatives,
		DBID:               m.ID,
		EstimatedDuration:  m.EstimatedDuration,
		CostEstimate:       m.CostEstimate,
		VerificationStatus: m.VerificationStatus,
		LastVerifiedAt:     m.LastVerifiedAt,
	}
}
