package domain

import "time"

// PathwayRecord is the persisted shape of a pathway as fetched from storage,
// before normalisation into a PathwayDefinition.
type PathwayRecord struct {
	ID                string // storage key
	Code              string // canonical pathway id, e.g. "rcem-hst"
	Name              string
	Description       string
	EstimatedDuration string
	TargetRole        string
	Status            *RecordStatus
	Country           *CountryRecord
	Milestones        []MilestoneRecord
}

type CountryRecord struct {
	Code string
	Name string
}

type CategoryRecord struct {
	Name string
}

// MilestoneRecord is the persisted shape of one pathway milestone.
type MilestoneRecord struct {
	ID                 string
	Name               string
	Description        string
	Category           *CategoryRecord
	IsRequired         bool
	Order              int
	EvidenceTypes      []string
	ResourceURL        string
	Alternatives       []string
	EstimatedDuration  string
	CostEstimate       string
	VerificationStatus string
	LastVerifiedAt     *time.Time
	Status             *RecordStatus
}

// IsActive reports whether a record status counts as active. A missing
// status is treated as active.
func IsActive(s *RecordStatus) bool {
	return s == nil || *s == RecordActive
}
