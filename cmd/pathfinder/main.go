package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/pathfinder/internal/cli"
	"github.com/alexanderramin/pathfinder/internal/config"
	"github.com/alexanderramin/pathfinder/internal/db"
	"github.com/alexanderramin/pathfinder/internal/logging"
	"github.com/alexanderramin/pathfinder/internal/registry"
	"github.com/alexanderramin/pathfinder/internal/repository"
	"github.com/alexanderramin/pathfinder/internal/resolver"
	"github.com/alexanderramin/pathfinder/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		database *sql.DB
		logger   = zap.NewNop()
	)
	defer func() {
		_ = logger.Sync()
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}

	// Detect interactive terminal for prompt-driven commands.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Services are wired once config (file, env, flags) has been loaded.
	app.Boot = func(cfg config.Config) error {
		var err error
		if logger, err = logging.New(cfg.Log.Mode, cfg.Log.Level); err != nil {
			return err
		}

		if database, err = db.OpenDB(cfg.DBPath); err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		// Wire repositories
		pathwayRepo := repository.NewSQLitePathwayRepo(database)
		profileRepo := repository.NewSQLiteUserProfileRepo(database)
		milestoneRepo := repository.NewSQLiteUserMilestoneRepo(database)
		customRepo := repository.NewSQLiteCustomMilestoneRepo(database)

		cache := registry.NewCache(pathwayRepo, cfg.Registry.CacheTTL, registry.WithLogger(logger))
		observer := service.NewZapUseCaseObserver(logger)

		// Wire services
		app.Pathways = service.NewPathwayService(cache, profileRepo, milestoneRepo, customRepo,
			service.PathwayOptions{
				FallbackID:    cfg.Resolver.FallbackPathwayID,
				Workers:       cfg.Progress.Workers,
				Tracer:        resolver.NewZapTracer(logger),
				TraceCapacity: cfg.Trace.Capacity,
			}, observer)
		app.Imports = service.NewImportService(db.NewSQLiteUnitOfWork(database), cache, logger, observer)
		app.Users = service.NewUserService(profileRepo, milestoneRepo, customRepo, app.Pathways, observer)

		return bootstrapSeed(context.Background(), app, cfg, logger)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// bootstrapSeed imports the configured seed file into an empty registry so a
// fresh database is usable without an explicit `registry import`.
func bootstrapSeed(ctx context.Context, app *cli.App, cfg config.Config, logger *zap.Logger) error {
	if cfg.SeedPath == "" {
		return nil
	}
	defs, err := app.Pathways.ListPathways(ctx)
	if err != nil {
		return err
	}
	if len(defs) > 0 {
		return nil
	}
	res, err := app.Imports.ImportSeed(ctx, cfg.SeedPath)
	if err != nil {
		return fmt.Errorf("importing %s: %w", cfg.SeedPath, err)
	}
	logger.Info("seeded empty registry", zap.String("file", cfg.SeedPath), zap.Int("pathways", res.PathwayCount))
	return nil
}
