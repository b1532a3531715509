package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/pathfinder/internal/db"
	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/importer"
	"github.com/alexanderramin/pathfinder/internal/repository"
	"go.uber.org/zap"
)

type importService struct {
	uow      db.UnitOfWork
	registry RegistryProvider
	logger   *zap.Logger
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, reg RegistryProvider, logger *zap.Logger, observers ...UseCaseObserver) ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &importService{
		uow:      uow,
		registry: reg,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportSeed(ctx context.Context, path string) (*ImportResult, error) {
	seed, err := importer.LoadSeed(path)
	if err != nil {
		return nil, fmt.Errorf("loading seed file: %w", err)
	}
	return s.ImportSeedFile(ctx, seed)
}

// ImportSeedFile validates, converts and upserts the seed in one
// transaction. The registry snapshot is dropped only after a commit.
func (s *importService) ImportSeedFile(ctx context.Context, seed *importer.SeedFile) (result *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import-seed", fields, &err)()

	if errs := importer.ValidateSeed(seed); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	records, err := importer.Convert(seed)
	if err != nil {
		return nil, fmt.Errorf("converting seed: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePathwayRepo(tx).UpsertPathways(ctx, records)
	})
	if err != nil {
		return nil, fmt.Errorf("storing pathways: %w", err)
	}
	if s.registry != nil {
		s.registry.Invalidate()
	}

	result = summarize(records)
	fields["pathways"] = result.PathwayCount
	fields["milestones"] = result.MilestoneCount
	return result, nil
}

// WatchSeed imports path once, then again after every change until ctx
// ends. Each outcome, including failures, goes to report.
func (s *importService) WatchSeed(ctx context.Context, path string, report func(*ImportResult, error)) error {
	w, err := importer.NewWatcher(path, s.logger)
	if err != nil {
		return fmt.Errorf("creating seed watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("starting seed watcher: %w", err)
	}
	defer w.Stop()

	report(s.ImportSeed(ctx, path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case file, ok := <-w.Changes:
			if !ok {
				return nil
			}
			s.logger.Info("seed changed", zap.String("file", file))
			report(s.ImportSeed(ctx, file))
		}
	}
}

func summarize(records []domain.PathwayRecord) *ImportResult {
	res := &ImportResult{PathwayCount: len(records)}
	for _, r := range records {
		res.Codes = append(res.Codes, r.Code)
		res.MilestoneCount += len(r.Milestones)
	}
	return res
}

func formatValidationErrors(errs []error) error {
	return fmt.Errorf("seed validation failed (%d errors):\n%w", len(errs), errors.Join(errs...))
}
