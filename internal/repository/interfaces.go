package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/pathfinder/internal/domain"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("not found")

// PathwayRepo stores the canonical pathway catalogue. FetchPathwayRecords
// returns every record regardless of status; filtering is the registry's job.
type PathwayRepo interface {
	FetchPathwayRecords(ctx context.Context) ([]domain.PathwayRecord, error)
	UpsertPathways(ctx context.Context, records []domain.PathwayRecord) error
	ListCategories(ctx context.Context) ([]string, error)
}

type UserProfileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
	ListUserIDs(ctx context.Context) ([]string, error)
}

type UserMilestoneRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.UserMilestoneRecord, error)
	Upsert(ctx context.Context, r *domain.UserMilestoneRecord) error
}

type CustomMilestoneRepo interface {
	Create(ctx context.Context, c *domain.CustomMilestone) error
	ListByUser(ctx context.Context, userID string) ([]domain.CustomMilestone, error)
	SetCompleted(ctx context.Context, userID, id string, completed bool) error
}
