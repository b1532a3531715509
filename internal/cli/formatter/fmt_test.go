package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/matcher"
	"github.com/alexanderramin/pathfinder/internal/progress"
	"github.com/alexanderramin/pathfinder/internal/resolver"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

func samplePathway() domain.PathwayDefinition {
	verified := fixedNow.Add(-3 * 24 * time.Hour)
	return domain.PathwayDefinition{
		ID:                "rcem-hst",
		Name:              "RCEM Higher Specialty Training",
		Description:       "Emergency medicine higher training",
		EstimatedDuration: "3 years",
		TargetRole:        "Consultant",
		Country:           "United Kingdom",
		Requirements: []domain.PathwayRequirement{
			{Name: "FRCEM Final", Category: domain.CategoryExam, IsRequired: true, Order: 1,
				Alternatives: []string{"FRCEM Final (OSCE)"}, LastVerifiedAt: &verified},
			{Name: "ALS", Category: domain.CategoryCertificate, IsRequired: false, Order: 2},
		},
	}
}

func TestFormatPathwayList(t *testing.T) {
	out := FormatPathwayList([]domain.PathwayDefinition{samplePathway()})
	assert.Contains(t, out, "rcem-hst")
	assert.Contains(t, out, "RCEM Higher Specialty Training")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "3 years")

	assert.Contains(t, FormatPathwayList(nil), "No pathways")
}

func TestFormatPathway(t *testing.T) {
	p := samplePathway()
	out := FormatPathway(&p, fixedNow)
	assert.Contains(t, out, "RCEM HIGHER SPECIALTY TRAINING")
	assert.Contains(t, out, "Consultant")
	assert.Contains(t, out, "United Kingdom")
	assert.Contains(t, out, "FRCEM Final (OSCE)")
	assert.Contains(t, out, "verified 3d ago")
	assert.Contains(t, out, "unverified")
	assert.Contains(t, out, "optional")
	assert.NotContains(t, out, "matched via")

	tagged := p.WithProvenance("emergency medicine", "")
	assert.Contains(t, FormatPathway(tagged, fixedNow), "matched via 'emergency medicine'")

	empty := domain.PathwayDefinition{ID: "x", Name: "X"}
	assert.Contains(t, FormatPathway(&empty, fixedNow), "No requirements listed.")
}

func TestFormatProgress(t *testing.T) {
	p := samplePathway()
	resolved := progress.Result{
		Reference:        "rcem-hst",
		Pathway:          &p,
		Resolved:         true,
		MatchedFrom:      resolver.FromPathwayIDs,
		Completed:        p.Requirements[:1],
		CustomMilestones: []domain.CustomMilestone{{Name: "Audit project", Completed: false}},
		CompletedCount:   1,
		TotalRequired:    2,
		PercentComplete:  50,
	}
	unresolved := progress.Result{
		Reference: "Underwater Medicine",
		Pathway:   &domain.PathwayDefinition{ID: "unresolved-underwater-medicine", Name: "Underwater Medicine"},
	}
	out := FormatProgress("alice", []progress.Result{resolved, unresolved})

	assert.Contains(t, out, "ALICE")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "1 of 2")
	assert.Contains(t, out, "FRCEM Final")
	assert.Contains(t, out, "Audit project")
	assert.Contains(t, out, "custom")
	assert.Contains(t, out, "unresolved-underwater-medicine")

	assert.Contains(t, FormatProgress("bob", nil), "No pathways on this profile")
}

func TestFormatProgressNextSteps(t *testing.T) {
	p := samplePathway()
	r := progress.Result{
		Reference: "rcem-hst", Pathway: &p, Resolved: true, MatchedFrom: resolver.FromPathwayIDs,
		Missing: p.Requirements[:1], NextSteps: p.Requirements[:1], TotalRequired: 1,
	}
	out := FormatProgress("alice", []progress.Result{r})
	assert.Contains(t, out, "next:")
	assert.Contains(t, out, "0%")
}

func TestFormatProgressSummary(t *testing.T) {
	p := samplePathway()
	rows := []SummaryRow{
		{UserID: "alice", Result: progress.Result{Pathway: &p, Resolved: true, CompletedCount: 1, TotalRequired: 4, PercentComplete: 25}},
		{UserID: "bob", Result: progress.Result{Pathway: &domain.PathwayDefinition{Name: "Mystery"}}},
	}
	out := FormatProgressSummary(rows)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "Mystery")

	assert.Contains(t, FormatProgressSummary(nil), "No user profiles")
}

func TestFormatResolution(t *testing.T) {
	p := samplePathway()
	res := resolver.Result{
		Pathway:     p.WithProvenance("EM training", "Emergency Medicine"),
		MatchedFrom: resolver.FromFuzzyName,
		MatchedVia:  "EM training",
	}
	out := FormatResolution(res)
	assert.Contains(t, out, "rcem-hst")
	assert.Contains(t, out, "fuzzy_name")
	assert.Contains(t, out, "matched via 'EM training' in Emergency Medicine")

	assert.Contains(t, FormatResolution(resolver.Result{}), "No pathway matched")
}

func TestFormatTraces(t *testing.T) {
	events := []resolver.TraceEvent{
		{Kind: resolver.TraceFuzzyMatch, Attempted: []string{"EM"}, PathwayID: "rcem-hst",
			Rule: matcher.RuleAlias, At: fixedNow.Add(-2 * time.Hour)},
		{Kind: resolver.TraceUnresolved, Attempted: []string{"Underwater"}, At: fixedNow.Add(-5 * time.Minute)},
		{Kind: resolver.TraceFallback, Attempted: []string{"Basket"}, PathwayID: "img-service", At: fixedNow.Add(-time.Minute)},
	}
	out := FormatTraces(events, fixedNow)
	assert.Contains(t, out, "fuzzy_match")
	assert.Contains(t, out, "alias")
	assert.Contains(t, out, "Underwater")
	assert.Contains(t, out, "fallback")
	assert.Less(t, strings.Index(out, "Basket"), strings.Index(out, "Underwater"), "newest first")
	assert.Contains(t, out, "2h ago")
	assert.Less(t, strings.Index(out, "Underwater"), strings.Index(out, "rcem-hst"), "newest first")

	assert.Contains(t, FormatTraces(nil, fixedNow), "No resolution traces")
}
