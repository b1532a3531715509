package service

import (
	"context"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/importer"
	"github.com/alexanderramin/pathfinder/internal/progress"
	"github.com/alexanderramin/pathfinder/internal/registry"
	"github.com/alexanderramin/pathfinder/internal/resolver"
)

// RegistryProvider hands out the current registry snapshot.
// *registry.Cache is the production implementation.
type RegistryProvider interface {
	Get(ctx context.Context) (*registry.Registry, error)
	Invalidate()
}

// PathwayService answers registry and progress queries. Pathways it returns
// are copies, so callers may modify them freely.
type PathwayService interface {
	GetPathwayByID(ctx context.Context, id string) (*domain.PathwayDefinition, error)
	GetPathwayByName(ctx context.Context, name, specialty string) (*domain.PathwayDefinition, error)
	ResolvePrimaryPathway(ctx context.Context, in resolver.Input) (resolver.Result, error)
	ListPathways(ctx context.Context) ([]domain.PathwayDefinition, error)
	RefreshRegistry(ctx context.Context) (int, error)

	ComputeProgress(ctx context.Context, profile domain.UserProfile, records []domain.UserMilestoneRecord) ([]progress.Result, error)
	ProgressForUser(ctx context.Context, userID string) ([]progress.Result, error)
	ProgressForUsers(ctx context.Context, userIDs []string) ([]UserProgress, error)

	// Traces returns recent resolution diagnostics, oldest first.
	Traces() []resolver.TraceEvent
}

// UserProgress pairs a user with their per-pathway progress.
type UserProgress struct {
	UserID  string
	Results []progress.Result
}

// ImportResult holds the outcome of a seed import.
type ImportResult struct {
	Codes          []string
	PathwayCount   int
	MilestoneCount int
}

type ImportService interface {
	ImportSeed(ctx context.Context, path string) (*ImportResult, error)
	ImportSeedFile(ctx context.Context, seed *importer.SeedFile) (*ImportResult, error)
	WatchSeed(ctx context.Context, path string, report func(*ImportResult, error)) error
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	SetProfile(ctx context.Context, userID string, refs []string, specialty string) (*domain.UserProfile, error)
	ListUserIDs(ctx context.Context) ([]string, error)
	MarkMilestone(ctx context.Context, userID, pathwayRef, milestone string, status domain.MilestoneStatus) (*domain.UserMilestoneRecord, error)
	AddCustomMilestone(ctx context.Context, userID, name, pathwayRef string) (*domain.CustomMilestone, error)
	SetCustomMilestoneCompleted(ctx context.Context, userID, id string, completed bool) error
}
