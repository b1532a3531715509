package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/google/uuid"
)

// seedNamespace scopes the name-based UUIDs minted for seeded rows so a
// re-import of the same seed yields the same ids.
var seedNamespace = uuid.MustParse("6f1c8a52-3d0e-4b8f-9a57-2c4e1d7b9e30")

// PathwayUUID returns the storage id for a pathway code.
func PathwayUUID(code string) string {
	return uuid.NewSHA1(seedNamespace, []byte("pathway/"+code)).String()
}

// MilestoneUUID returns the storage id for a milestone name within a pathway.
func MilestoneUUID(code, name string) string {
	return uuid.NewSHA1(seedNamespace, []byte("milestone/"+code+"/"+name)).String()
}

// Convert transforms a validated SeedFile into records ready for persistence.
// Call ValidateSeed first; Convert assumes the seed is valid.
func Convert(seed *SeedFile) ([]domain.PathwayRecord, error) {
	countries := make(map[string]string, len(seed.Countries))
	for _, c := range seed.Countries {
		countries[c.Code] = c.Name
	}

	records := make([]domain.PathwayRecord, 0, len(seed.Pathways))
	for _, p := range seed.Pathways {
		rec := domain.PathwayRecord{
			ID:                PathwayUUID(p.ID),
			Code:              p.ID,
			Name:              p.Name,
			Description:       p.Description,
			EstimatedDuration: p.EstimatedDuration,
			TargetRole:        p.TargetRole,
			Status:            domain.StatusPtr(domain.RecordStatus(p.Status)),
		}
		if p.Country != "" {
			rec.Country = &domain.CountryRecord{Code: p.Country, Name: countries[p.Country]}
		}

		for j, m := range p.Milestones {
			mr, err := convertMilestone(p.ID, j, m)
			if err != nil {
				return nil, fmt.Errorf("pathway %s: %w", p.ID, err)
			}
			rec.Milestones = append(rec.Milestones, mr)
		}
		records = append(records, rec)
	}
	return records, nil
}

func convertMilestone(code string, idx int, m MilestoneSeed) (domain.MilestoneRecord, error) {
	required := true
	if m.Required != nil {
		required = *m.Required
	}
	order := idx + 1
	if m.Order != nil {
		order = *m.Order
	}

	mr := domain.MilestoneRecord{
		ID:                 MilestoneUUID(code, m.Name),
		Name:               m.Name,
		Description:        m.Description,
		IsRequired:         required,
		Order:              order,
		EvidenceTypes:      m.EvidenceTypes,
		ResourceURL:        m.ResourceURL,
		Alternatives:       m.Alternatives,
		EstimatedDuration:  m.EstimatedDuration,
		CostEstimate:       m.CostEstimate,
		VerificationStatus: m.VerificationStatus,
		Status:             domain.StatusPtr(domain.RecordStatus(m.Status)),
	}
	if m.Category != "" {
		mr.Category = &domain.CategoryRecord{Name: m.Category}
	}
	if m.LastVerified != "" {
		t, err := time.Parse(dateLayout, m.LastVerified)
		if err != nil {
			return mr, fmt.Errorf("parsing last_verified for %s: %w", m.Name, err)
		}
		mr.LastVerifiedAt = &t
	}
	return mr, nil
}
