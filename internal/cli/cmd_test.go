package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/pathfinder/internal/config"
	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/registry"
	"github.com/alexanderramin/pathfinder/internal/repository"
	"github.com/alexanderramin/pathfinder/internal/service"
	"github.com/alexanderramin/pathfinder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSeed = "../importer/testdata/pathways.yaml"

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	pathwayRepo := repository.NewSQLitePathwayRepo(database)
	profiles := repository.NewSQLiteUserProfileRepo(database)
	milestones := repository.NewSQLiteUserMilestoneRepo(database)
	customs := repository.NewSQLiteCustomMilestoneRepo(database)
	cache := registry.NewCache(pathwayRepo, registry.DefaultCacheTTL)

	pathways := service.NewPathwayService(cache, profiles, milestones, customs, service.PathwayOptions{Workers: 2})
	return &App{
		Pathways: pathways,
		Imports:  service.NewImportService(testutil.NewTestUoW(database), cache, zap.NewNop()),
		Users:    service.NewUserService(profiles, milestones, customs, pathways),
	}
}

// seededApp is testApp with the test seed imported through the CLI.
func seededApp(t *testing.T) *App {
	t.Helper()
	app := testApp(t)
	_, err := executeCmd(t, app, "registry", "import", testSeed)
	require.NoError(t, err)
	return app
}

// writeConfig creates a config file so tests never pick up a developer's
// ~/.pathfinder.yaml.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pathfinder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// executeCmd runs a cobra command as user alice and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	cfg := writeConfig(t, "user: alice\ndb_path: \":memory:\"\n")
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_LoadsConfigIntoApp(t *testing.T) {
	app := testApp(t)
	var booted config.Config
	app.Boot = func(cfg config.Config) error {
		booted = cfg
		return nil
	}

	_, err := executeCmd(t, app, "registry", "list")
	require.NoError(t, err)
	assert.Equal(t, "alice", booted.User)
	assert.Equal(t, ":memory:", booted.DBPath)
	assert.Equal(t, "img-service", booted.Resolver.FallbackPathwayID)
	assert.Equal(t, booted, app.Config)
}

func TestRootCmd_UserFlagOverridesConfig(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "--user", "bob", "registry", "list")
	require.NoError(t, err)
	assert.Equal(t, "bob", app.Config.User)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	app := testApp(t)
	root := NewRootCmd(app)
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"--config", writeConfig(t, "log:\n  level: loud\n"), "registry", "list"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestRegistryCmd_ImportAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "registry", "import", testSeed)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 7 pathways (20 milestones)")

	out, err = executeCmd(t, app, "registry", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "rcem-hst")
	assert.Contains(t, out, "GP Specialty Training")
	assert.NotContains(t, out, "amc-australia", "draft pathways are hidden")
}

func TestRegistryCmd_ImportWithoutPath(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "registry", "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed_path is not configured")
}

func TestRegistryCmd_ImportUsesConfiguredSeedPath(t *testing.T) {
	app := testApp(t)
	abs, err := filepath.Abs(testSeed)
	require.NoError(t, err)

	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"--config", writeConfig(t, "seed_path: "+abs+"\n"), "registry", "import"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Imported 7 pathways")
}

func TestRegistryCmd_ImportRejectsInvalidSeed(t *testing.T) {
	app := testApp(t)
	bad := writeConfig(t, "pathways:\n  - id: Bad Id\n    name: x\n")
	_, err := executeCmd(t, app, "registry", "import", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed validation failed")
}

func TestRegistryCmd_ShowByIDAndName(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "registry", "show", "rcem-hst")
	require.NoError(t, err)
	assert.Contains(t, out, "EMERGENCY MEDICINE HIGHER SPECIALTY TRAINING")
	assert.Contains(t, out, "FRCEM Final")

	out, err = executeCmd(t, app, "registry", "show", "GP", "Specialty", "Training")
	require.NoError(t, err)
	assert.Contains(t, out, "MRCGP AKT")

	_, err = executeCmd(t, app, "registry", "show", "Underwater Basket Weaving")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPathwayNotFound)
}

func TestRegistryCmd_Refresh(t *testing.T) {
	app := seededApp(t)
	out, err := executeCmd(t, app, "registry", "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "Registry reloaded: 6 pathways")
}

func TestResolveCmd(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "resolve", "--ids", "nope,gpst")
	require.NoError(t, err)
	assert.Contains(t, out, "gpst")
	assert.Contains(t, out, "pathway_ids")

	out, err = executeCmd(t, app, "resolve", "--name", "GP Specialty Training")
	require.NoError(t, err)
	assert.Contains(t, out, "direct_name")

	out, err = executeCmd(t, app, "resolve", "--name", "Underwater Basket Weaving")
	require.NoError(t, err)
	assert.Contains(t, out, "No pathway matched")

	out, err = executeCmd(t, app, "resolve", "--name", "Underwater Basket Weaving", "--fallback")
	require.NoError(t, err)
	assert.Contains(t, out, "img-service")
	assert.Contains(t, out, "fallback")
}

func TestResolveCmd_Trace(t *testing.T) {
	app := seededApp(t)
	out, err := executeCmd(t, app, "resolve", "--name", "Underwater Basket Weaving", "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "unresolved")
	assert.Contains(t, out, "Underwater Basket Weaving")
}

func TestProfileCmd_SetAndShow(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "profile", "set", "--pathway", "rcem-hst", "--pathway", "gpst", "--specialty", "Emergency Medicine")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved profile alice with 2 pathway(s)")

	out, err = executeCmd(t, app, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "rcem-hst, gpst")
	assert.Contains(t, out, "Emergency Medicine")
}

func TestProfileCmd_ShowMissing(t *testing.T) {
	app := seededApp(t)
	_, err := executeCmd(t, app, "profile", "show")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProgressCmd_SingleUser(t *testing.T) {
	app := seededApp(t)
	_, err := executeCmd(t, app, "profile", "set", "--pathway", "rcem-hst", "--pathway", "Tropical Medicine")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "milestone", "done", "rcem-hst", "MRCEM", "Primary")
	require.NoError(t, err)
	assert.Contains(t, out, "Done")
	assert.Contains(t, out, "MRCEM Primary")

	out, err = executeCmd(t, app, "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 3")
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "unresolved-tropical-medicine")

	_, err = executeCmd(t, app, "milestone", "undo", "rcem-hst", "MRCEM Primary")
	require.NoError(t, err)
	out, err = executeCmd(t, app, "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "0 of 3")
}

func TestProgressCmd_AllUsers(t *testing.T) {
	app := seededApp(t)
	_, err := executeCmd(t, app, "profile", "set", "--pathway", "gpst")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "--user", "bob", "profile", "set", "--pathway", "mrcp-imt")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "progress", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "GP Specialty Training")
	assert.Contains(t, out, "Internal Medicine Training")
	assert.Less(t, strings.Index(out, "alice"), strings.Index(out, "bob"))

	out, err = executeCmd(t, app, "progress", "--users", "bob")
	require.NoError(t, err)
	assert.NotContains(t, out, "alice")
}

func TestMilestoneCmd_UnknownMilestone(t *testing.T) {
	app := seededApp(t)
	_, err := executeCmd(t, app, "milestone", "done", "rcem-hst", "Underwater Exam")
	assert.ErrorIs(t, err, domain.ErrMilestoneNotFound)
}

func TestCustomCmd_AddAndComplete(t *testing.T) {
	app := seededApp(t)
	_, err := executeCmd(t, app, "profile", "set", "--pathway", "gpst")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "custom", "add", "Audit", "project", "--pathway", "gpst")
	require.NoError(t, err)
	assert.Contains(t, out, "Added custom milestone Audit project")

	p, err := app.Users.GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, p.CustomMilestones, 1)
	id := p.CustomMilestones[0].ID

	out, err = executeCmd(t, app, "custom", "done", id)
	require.NoError(t, err)
	assert.Contains(t, out, "completed")

	out, err = executeCmd(t, app, "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 4")

	_, err = executeCmd(t, app, "custom", "reopen", "missing-id")
	assert.ErrorIs(t, err, domain.ErrMilestoneNotFound)
}

func TestChooseCmd_RequiresTerminal(t *testing.T) {
	app := seededApp(t)
	_, err := executeCmd(t, app, "choose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")

	app.IsInteractive = func() bool { return false }
	_, err = executeCmd(t, app, "choose")
	require.Error(t, err)
}

func TestPathwayOptions_SkipsHeldPathways(t *testing.T) {
	defs := []domain.PathwayDefinition{
		{ID: "gpst", Name: "GP Specialty Training", Country: "United Kingdom"},
		{ID: "img-service", Name: "International Service Post"},
	}
	opts := pathwayOptions(defs, []string{"gpst"})
	require.Len(t, opts, 1)
	assert.Equal(t, "img-service", opts[0].Value)
	assert.Equal(t, "International Service Post", opts[0].Key)

	opts = pathwayOptions(defs, nil)
	assert.Equal(t, "GP Specialty Training (United Kingdom)", opts[0].Key)
}
