package domain

import "time"

// UserMilestoneRecord is a user's completion state for one canonical
// milestone. MilestoneName is denormalized at write time.
type UserMilestoneRecord struct {
	ID            string
	UserID        string
	MilestoneID   string
	MilestoneName string
	Status        MilestoneStatus
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r UserMilestoneRecord) IsDone() bool {
	return r.Status == MilestoneDone
}

// CustomMilestone is a user-authored milestone outside any canonical pathway.
// PathwayID historically holds either a pathway id or its display name.
type CustomMilestone struct {
	ID        string
	UserID    string
	Name      string
	PathwayID string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelongsTo reports whether the milestone is attached to the pathway known
// by ref or by its canonical display name.
func (c CustomMilestone) BelongsTo(ref, name string) bool {
	if c.PathwayID == "" {
		return false
	}
	return c.PathwayID == ref || c.PathwayID == name
}
