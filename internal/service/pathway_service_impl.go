package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/progress"
	"github.com/alexanderramin/pathfinder/internal/registry"
	"github.com/alexanderramin/pathfinder/internal/repository"
	"github.com/alexanderramin/pathfinder/internal/resolver"
	"golang.org/x/sync/errgroup"
)

// DefaultProgressWorkers bounds batch progress concurrency when unset.
const DefaultProgressWorkers = 4

// PathwayOptions tunes resolution and batch behaviour.
type PathwayOptions struct {
	FallbackID string
	Workers    int
	// Tracer receives resolution diagnostics in addition to the in-memory
	// recorder backing Traces.
	Tracer        resolver.Tracer
	TraceCapacity int
}

type pathwayService struct {
	registry   RegistryProvider
	profiles   repository.UserProfileRepo
	milestones repository.UserMilestoneRepo
	customs    repository.CustomMilestoneRepo

	tracer     resolver.Tracer
	recorder   *resolver.RecorderTracer
	fallbackID string
	workers    int
	observer   UseCaseObserver
}

func NewPathwayService(
	reg RegistryProvider,
	profiles repository.UserProfileRepo,
	milestones repository.UserMilestoneRepo,
	customs repository.CustomMilestoneRepo,
	opts PathwayOptions,
	observers ...UseCaseObserver,
) PathwayService {
	recorder := resolver.NewRecorderTracer(opts.TraceCapacity)
	tracer := resolver.Tracer(recorder)
	if opts.Tracer != nil {
		tracer = resolver.MultiTracer{recorder, opts.Tracer}
	}
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultProgressWorkers
	}
	return &pathwayService{
		registry:   reg,
		profiles:   profiles,
		milestones: milestones,
		customs:    customs,
		tracer:     tracer,
		recorder:   recorder,
		fallbackID: opts.FallbackID,
		workers:    workers,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *pathwayService) resolverFor(reg *registry.Registry) *resolver.Resolver {
	opts := []resolver.Option{resolver.WithTracer(s.tracer)}
	if s.fallbackID != "" {
		opts = append(opts, resolver.WithFallbackID(s.fallbackID))
	}
	return resolver.New(reg, opts...)
}

func (s *pathwayService) snapshot(ctx context.Context) (*registry.Registry, error) {
	reg, err := s.registry.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	return reg, nil
}

func (s *pathwayService) GetPathwayByID(ctx context.Context, id string) (*domain.PathwayDefinition, error) {
	reg, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := reg.ByID(id)
	if !ok {
		return nil, fmt.Errorf("pathway %q: %w", id, domain.ErrPathwayNotFound)
	}
	return p.Clone(), nil
}

func (s *pathwayService) GetPathwayByName(ctx context.Context, name, specialty string) (*domain.PathwayDefinition, error) {
	reg, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	res := s.resolverFor(reg).ResolveName(name, specialty)
	if !res.Resolved() {
		return nil, fmt.Errorf("pathway %q: %w", name, domain.ErrPathwayNotFound)
	}
	return res.Pathway, nil
}

func (s *pathwayService) ResolvePrimaryPathway(ctx context.Context, in resolver.Input) (res resolver.Result, err error) {
	fields := map[string]any{"use_fallback": in.UseFallback}
	defer observe(ctx, s.observer, "resolve-primary-pathway", fields, &err)()

	reg, err := s.snapshot(ctx)
	if err != nil {
		return resolver.Result{}, err
	}
	res = s.resolverFor(reg).Resolve(in)
	fields["matched_from"] = string(res.MatchedFrom)
	return res, nil
}

func (s *pathwayService) ListPathways(ctx context.Context) ([]domain.PathwayDefinition, error) {
	reg, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	all := reg.All()
	out := make([]domain.PathwayDefinition, len(all))
	for i := range all {
		out[i] = *all[i].Clone()
	}
	return out, nil
}

func (s *pathwayService) RefreshRegistry(ctx context.Context) (n int, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "refresh-registry", fields, &err)()

	s.registry.Invalidate()
	reg, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	fields["pathways"] = reg.Len()
	return reg.Len(), nil
}

func (s *pathwayService) ComputeProgress(ctx context.Context, profile domain.UserProfile, records []domain.UserMilestoneRecord) ([]progress.Result, error) {
	reg, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return progress.NewCalculator(s.resolverFor(reg)).Compute(profile, records), nil
}

func (s *pathwayService) ProgressForUser(ctx context.Context, userID string) (results []progress.Result, err error) {
	fields := map[string]any{"user": userID}
	defer observe(ctx, s.observer, "progress-for-user", fields, &err)()

	reg, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	results, err = s.progressFor(ctx, progress.NewCalculator(s.resolverFor(reg)), userID)
	fields["pathways"] = len(results)
	return results, err
}

// ProgressForUsers computes every user against one registry snapshot.
// Results keep the order of userIDs; the first failure cancels the rest.
func (s *pathwayService) ProgressForUsers(ctx context.Context, userIDs []string) (out []UserProgress, err error) {
	fields := map[string]any{"users": len(userIDs), "workers": s.workers}
	defer observe(ctx, s.observer, "progress-for-users", fields, &err)()

	reg, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	calc := progress.NewCalculator(s.resolverFor(reg))

	out = make([]UserProgress, len(userIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, id := range userIDs {
		i, id := i, id
		g.Go(func() error {
			results, err := s.progressFor(gctx, calc, id)
			if err != nil {
				return err
			}
			out[i] = UserProgress{UserID: id, Results: results}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *pathwayService) progressFor(ctx context.Context, calc *progress.Calculator, userID string) ([]progress.Result, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("loading profile for %s: %w", userID, err)
	}
	customs, err := s.customs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading custom milestones for %s: %w", userID, err)
	}
	records, err := s.milestones.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading milestone records for %s: %w", userID, err)
	}
	profile.CustomMilestones = customs
	return calc.Compute(*profile, records), nil
}

func (s *pathwayService) Traces() []resolver.TraceEvent {
	return s.recorder.Events()
}
