package domain

import "errors"

var (
	// ErrPathwayNotFound indicates no canonical pathway matched a lookup.
	ErrPathwayNotFound = errors.New("pathway not found")

	// ErrProfileNotFound indicates the user has no stored profile.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrMilestoneNotFound indicates a milestone name matched nothing in the
	// resolved pathway, or a custom milestone id is unknown.
	ErrMilestoneNotFound = errors.New("milestone not found")

	// ErrDuplicatePathwayID indicates two active pathway records share an id.
	ErrDuplicatePathwayID = errors.New("duplicate pathway id")
)
