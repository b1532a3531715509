package domain

import "time"

// UserProfile carries the pathway references a user holds. PathwayRefs may
// mix canonical ids, legacy free-text names and aliases.
type UserProfile struct {
	UserID           string
	PathwayRefs      []string
	Specialty        string
	CustomMilestones []CustomMilestone
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
