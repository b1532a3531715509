package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfileRepo_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserProfileRepo(db)
	ctx := context.Background()

	p := testutil.NewTestProfile("u1", "rcem-hst", "Core Medical Training")
	p.Specialty = "Emergency Medicine"
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, []string{"rcem-hst", "Core Medical Training"}, got.PathwayRefs)
	assert.Equal(t, "Emergency Medicine", got.Specialty)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUserProfileRepo_UpsertReplacesRefs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserProfileRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProfile("u1", "a", "b")))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProfile("u1", "gpst")))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"gpst"}, got.PathwayRefs)
}

func TestUserProfileRepo_GetNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserProfileRepo(db)

	_, err := repo.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserProfileRepo_EmptyRefs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserProfileRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProfile("u1")))
	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.PathwayRefs)
}

func TestUserProfileRepo_ListUserIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserProfileRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProfile("zoe")))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProfile("adam")))

	ids, err := repo.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"adam", "zoe"}, ids)
}

func TestUserMilestoneRepo_UpsertAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserMilestoneRepo(db)
	ctx := context.Background()

	done := testutil.NewTestUserMilestone("u1", "m1", domain.MilestoneDone, testutil.WithMilestoneName("MRCEM Primary"))
	todo := testutil.NewTestUserMilestone("u1", "m2", domain.MilestoneTodo)
	other := testutil.NewTestUserMilestone("u2", "m1", domain.MilestoneDone)
	require.NoError(t, repo.Upsert(ctx, &done))
	require.NoError(t, repo.Upsert(ctx, &todo))
	require.NoError(t, repo.Upsert(ctx, &other))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	byMilestone := map[string]domain.UserMilestoneRecord{}
	for _, r := range list {
		byMilestone[r.MilestoneID] = r
	}
	assert.True(t, byMilestone["m1"].IsDone())
	assert.Equal(t, "MRCEM Primary", byMilestone["m1"].MilestoneName)
	assert.NotNil(t, byMilestone["m1"].CompletedAt)
	assert.Equal(t, domain.MilestoneTodo, byMilestone["m2"].Status)
	assert.Nil(t, byMilestone["m2"].CompletedAt)
}

func TestUserMilestoneRepo_UpsertConflictUpdatesStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserMilestoneRepo(db)
	ctx := context.Background()

	first := testutil.NewTestUserMilestone("u1", "m1", domain.MilestoneDone)
	require.NoError(t, repo.Upsert(ctx, &first))

	undo := domain.UserMilestoneRecord{UserID: "u1", MilestoneID: "m1", Status: domain.MilestoneTodo}
	require.NoError(t, repo.Upsert(ctx, &undo))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID, "stored id survives the conflict")
	assert.Equal(t, domain.MilestoneTodo, list[0].Status)
	assert.Nil(t, list[0].CompletedAt)
}

func TestUserMilestoneRepo_ListEmptyIsNonNil(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserMilestoneRepo(db)

	list, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestUserMilestoneRepo_RejectsUnknownStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserMilestoneRepo(db)

	rec := domain.UserMilestoneRecord{UserID: "u1", MilestoneID: "m1", Status: "finished"}
	assert.Error(t, repo.Upsert(context.Background(), &rec))
}

func TestCustomMilestoneRepo_CreateListComplete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomMilestoneRepo(db)
	ctx := context.Background()

	c := testutil.NewTestCustomMilestone("u1", "Audit project", "rcem-hst", false)
	require.NoError(t, repo.Create(ctx, &c))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Audit project", list[0].Name)
	assert.Equal(t, "rcem-hst", list[0].PathwayID)
	assert.False(t, list[0].Completed)

	require.NoError(t, repo.SetCompleted(ctx, "u1", c.ID, true))
	list, err = repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, list[0].Completed)
}

func TestCustomMilestoneRepo_SetCompletedScopedToUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCustomMilestoneRepo(db)
	ctx := context.Background()

	c := testutil.NewTestCustomMilestone("u1", "Audit project", "", false)
	require.NoError(t, repo.Create(ctx, &c))

	err := repo.SetCompleted(ctx, "u2", c.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.SetCompleted(ctx, "u1", "missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
}
