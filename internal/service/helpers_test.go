package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/pathfinder/internal/registry"
	"github.com/alexanderramin/pathfinder/internal/repository"
	"github.com/alexanderramin/pathfinder/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db         *sql.DB
	cache      *registry.Cache
	pathwayDB  *repository.SQLitePathwayRepo
	profiles   *repository.SQLiteUserProfileRepo
	milestones *repository.SQLiteUserMilestoneRepo
	customs    *repository.SQLiteCustomMilestoneRepo
	pathways   PathwayService
	users      UserService
	observer   *recordingObserver
}

// newTestEnv wires real repositories over an in-memory database seeded
// with testutil.StandardPathwayRecords.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvOn(t, testutil.NewTestDB(t))
}

func newTestEnvOn(t *testing.T, database *sql.DB) *testEnv {
	t.Helper()

	env := &testEnv{
		db:         database,
		pathwayDB:  repository.NewSQLitePathwayRepo(database),
		profiles:   repository.NewSQLiteUserProfileRepo(database),
		milestones: repository.NewSQLiteUserMilestoneRepo(database),
		customs:    repository.NewSQLiteCustomMilestoneRepo(database),
		observer:   &recordingObserver{},
	}
	require.NoError(t, env.pathwayDB.UpsertPathways(context.Background(), testutil.StandardPathwayRecords()))

	env.cache = registry.NewCache(env.pathwayDB, registry.DefaultCacheTTL)
	env.pathways = NewPathwayService(env.cache, env.profiles, env.milestones, env.customs,
		PathwayOptions{Workers: 2}, env.observer)
	env.users = NewUserService(env.profiles, env.milestones, env.customs, env.pathways, env.observer)
	return env
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) byName(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
