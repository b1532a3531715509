package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/alexanderramin/pathfinder/internal/repository"
	"github.com/alexanderramin/pathfinder/internal/resolver"
)

type userService struct {
	profiles   repository.UserProfileRepo
	milestones repository.UserMilestoneRepo
	customs    repository.CustomMilestoneRepo
	pathways   PathwayService
	observer   UseCaseObserver
}

func NewUserService(
	profiles repository.UserProfileRepo,
	milestones repository.UserMilestoneRepo,
	customs repository.CustomMilestoneRepo,
	pathways PathwayService,
	observers ...UseCaseObserver,
) UserService {
	return &userService{
		profiles:   profiles,
		milestones: milestones,
		customs:    customs,
		pathways:   pathways,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrProfileNotFound)
		}
		return nil, err
	}
	if p.CustomMilestones, err = s.customs.ListByUser(ctx, userID); err != nil {
		return nil, err
	}
	return p, nil
}

// SetProfile replaces the user's pathway references. Blank and repeated
// references are dropped; order is otherwise kept.
func (s *userService) SetProfile(ctx context.Context, userID string, refs []string, specialty string) (p *domain.UserProfile, err error) {
	defer observe(ctx, s.observer, "set-profile", map[string]any{"user": userID, "refs": len(refs)}, &err)()

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}

	p = &domain.UserProfile{
		UserID:      userID,
		PathwayRefs: dedupeRefs(refs),
		Specialty:   strings.TrimSpace(specialty),
	}
	if existing, getErr := s.profiles.Get(ctx, userID); getErr == nil {
		p.CreatedAt = existing.CreatedAt
	} else if !errors.Is(getErr, repository.ErrNotFound) {
		return nil, getErr
	}

	if err = s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *userService) ListUserIDs(ctx context.Context) ([]string, error) {
	return s.profiles.ListUserIDs(ctx)
}

// MarkMilestone records status for the canonical milestone of pathwayRef
// whose name or alternative equals milestone (case-insensitive).
func (s *userService) MarkMilestone(ctx context.Context, userID, pathwayRef, milestone string, status domain.MilestoneStatus) (rec *domain.UserMilestoneRecord, err error) {
	fields := map[string]any{"user": userID, "pathway": pathwayRef, "status": string(status)}
	defer observe(ctx, s.observer, "mark-milestone", fields, &err)()

	if !domain.ValidMilestoneStatuses[string(status)] {
		return nil, fmt.Errorf("invalid milestone status %q", status)
	}

	res, err := s.pathways.ResolvePrimaryPathway(ctx, resolver.Input{PathwayIDs: []string{pathwayRef}})
	if err != nil {
		return nil, err
	}
	if !res.Resolved() {
		return nil, fmt.Errorf("pathway %q: %w", pathwayRef, domain.ErrPathwayNotFound)
	}

	req, ok := findRequirement(res.Pathway, milestone)
	if !ok {
		return nil, fmt.Errorf("%q in %s: %w", milestone, res.Pathway.ID, domain.ErrMilestoneNotFound)
	}

	rec = &domain.UserMilestoneRecord{
		UserID:        userID,
		MilestoneID:   req.DBID,
		MilestoneName: req.Name,
		Status:        status,
	}
	if rec.MilestoneID == "" {
		rec.MilestoneID = res.Pathway.ID + "/" + req.Name
	}
	if status == domain.MilestoneDone {
		now := time.Now().UTC().Truncate(time.Second)
		rec.CompletedAt = &now
	}
	if err = s.milestones.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	fields["milestone_id"] = rec.MilestoneID
	return rec, nil
}

func findRequirement(p *domain.PathwayDefinition, name string) (domain.PathwayRequirement, bool) {
	for _, r := range p.Requirements {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	for _, r := range p.Requirements {
		for _, alt := range r.Alternatives {
			if strings.EqualFold(alt, name) {
				return r, true
			}
		}
	}
	return domain.PathwayRequirement{}, false
}

func (s *userService) AddCustomMilestone(ctx context.Context, userID, name, pathwayRef string) (c *domain.CustomMilestone, err error) {
	defer observe(ctx, s.observer, "add-custom-milestone", map[string]any{"user": userID}, &err)()

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("custom milestone name is required")
	}
	c = &domain.CustomMilestone{
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		PathwayID: strings.TrimSpace(pathwayRef),
	}
	if err = s.customs.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *userService) SetCustomMilestoneCompleted(ctx context.Context, userID, id string, completed bool) error {
	err := s.customs.SetCompleted(ctx, userID, id, completed)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("custom milestone %s: %w", id, domain.ErrMilestoneNotFound)
	}
	return err
}

func dedupeRefs(refs []string) []string {
	seen := make(map[string]bool, len(refs))
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
