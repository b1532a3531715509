package resolver

import (
	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/matcher"
)

// DefaultFallbackPathway returns the built-in service-post pathway used when
// fallback is requested and the registry has no entry for the fallback id.
func DefaultFallbackPathway() *domain.PathwayDefinition {
	return &domain.PathwayDefinition{
		ID:                matcher.ServicePathwayID,
		Name:              "International Service Post",
		Description:       "Non-training service post for internationally trained doctors.",
		EstimatedDuration: "12-24 months",
		TargetRole:        "Specialty Doctor",
		Requirements: []domain.PathwayRequirement{
			{Name: "PLAB 1", Category: domain.CategoryExam, IsRequired: true, Order: 1},
			{Name: "PLAB 2", Category: domain.CategoryExam, IsRequired: true, Order: 2},
			{Name: "GMC Registration", Category: domain.CategoryCertificate, IsRequired: true, Order: 3},
		},
	}
}
