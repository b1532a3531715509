package testutil

import (
	"time"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/google/uuid"
)

// Pathway record options
type PathwayOption func(*domain.PathwayRecord)

func WithPathwayStatus(s domain.RecordStatus) PathwayOption {
	return func(p *domain.PathwayRecord) {
		p.Status = &s
	}
}

func WithCountry(code, name string) PathwayOption {
	return func(p *domain.PathwayRecord) {
		p.Country = &domain.CountryRecord{Code: code, Name: name}
	}
}

func WithMilestones(ms ...domain.MilestoneRecord) PathwayOption {
	return func(p *domain.PathwayRecord) {
		p.Milestones = append(p.Milestones, ms...)
	}
}

func NewTestPathwayRecord(code, name string, opts ...PathwayOption) domain.PathwayRecord {
	p := domain.PathwayRecord{
		ID:                uuid.New().String(),
		Code:              code,
		Name:              name,
		Description:       name + " programme",
		EstimatedDuration: "3 years",
		TargetRole:        "Registrar",
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Milestone record options
type MilestoneOption func(*domain.MilestoneRecord)

func Optional() MilestoneOption {
	return func(m *domain.MilestoneRecord) {
		m.IsRequired = false
	}
}

func WithAlternatives(names ...string) MilestoneOption {
	return func(m *domain.MilestoneRecord) {
		m.Alternatives = names
	}
}

func WithCategory(name string) MilestoneOption {
	return func(m *domain.MilestoneRecord) {
		m.Category = &domain.CategoryRecord{Name: name}
	}
}

func WithMilestoneStatus(s domain.RecordStatus) MilestoneOption {
	return func(m *domain.MilestoneRecord) {
		m.Status = &s
	}
}

func NewTestMilestoneRecord(id, name string, order int, opts ...MilestoneOption) domain.MilestoneRecord {
	m := domain.MilestoneRecord{
		ID:         id,
		Name:       name,
		IsRequired: true,
		Order:      order,
		Category:   &domain.CategoryRecord{Name: string(domain.CategoryExam)},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// StandardPathwayRecords returns a small registry covering the pathways
// the heuristic tables target.
func StandardPathwayRecords() []domain.PathwayRecord {
	return []domain.PathwayRecord{
		NewTestPathwayRecord("img-service", "International Service Post",
			WithMilestones(
				NewTestMilestoneRecord("svc-1", "PLAB 1", 1),
				NewTestMilestoneRecord("svc-2", "PLAB 2", 2),
			)),
		NewTestPathwayRecord("rcem-hst", "Emergency Medicine Higher Specialty Training",
			WithCountry("GB", "United Kingdom"),
			WithMilestones(
				NewTestMilestoneRecord("m1", "MRCEM Primary", 1),
				NewTestMilestoneRecord("m2", "MRCEM Intermediate SBA", 2),
				NewTestMilestoneRecord("m3", "FRCEM Final", 3, WithAlternatives("FRCEM Final (OSCE)")),
				NewTestMilestoneRecord("m4", "ALS Certificate", 4, Optional(), WithCategory("Certificate")),
				NewTestMilestoneRecord("m5", "Leadership Portfolio", 5, WithCategory("Portfolio")),
			)),
		NewTestPathwayRecord("rcem-run-through", "Emergency Medicine Run-Through (ACCS)",
			WithCountry("GB", "United Kingdom")),
		NewTestPathwayRecord("mrcp-imt", "Internal Medicine Training",
			WithCountry("GB", "United Kingdom"),
			WithMilestones(
				NewTestMilestoneRecord("imt-1", "MRCP Part 1", 1, WithAlternatives("MRCPI Part 1")),
				NewTestMilestoneRecord("imt-2", "MRCP Part 2 Written", 2),
				NewTestMilestoneRecord("imt-3", "MRCP PACES", 3),
			)),
		NewTestPathwayRecord("surgical-hst", "Surgical Registrar",
			WithCountry("GB", "United Kingdom")),
		NewTestPathwayRecord("gpst", "GP Specialty Training",
			WithCountry("GB", "United Kingdom"),
			WithMilestones(
				NewTestMilestoneRecord("gp-1", "MRCGP AKT", 1),
				NewTestMilestoneRecord("gp-2", "MRCGP SCA", 2),
			)),
	}
}

// User-side fixtures

type UserMilestoneOption func(*domain.UserMilestoneRecord)

func WithMilestoneName(name string) UserMilestoneOption {
	return func(r *domain.UserMilestoneRecord) {
		r.MilestoneName = name
	}
}

func NewTestUserMilestone(userID, milestoneID string, status domain.MilestoneStatus, opts ...UserMilestoneOption) domain.UserMilestoneRecord {
	now := time.Now().UTC()
	r := domain.UserMilestoneRecord{
		ID:          uuid.New().String(),
		UserID:      userID,
		MilestoneID: milestoneID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == domain.MilestoneDone {
		r.CompletedAt = &now
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func NewTestCustomMilestone(userID, name, pathwayID string, completed bool) domain.CustomMilestone {
	now := time.Now().UTC()
	return domain.CustomMilestone{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		PathwayID: pathwayID,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestProfile(userID string, refs ...string) *domain.UserProfile {
	now := time.Now().UTC()
	return &domain.UserProfile{
		UserID:      userID,
		PathwayRefs: refs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
