package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pathfinder/internal/db"
	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/google/uuid"
)

// SQLiteCustomMilestoneRepo implements CustomMilestoneRepo using a SQLite database.
type SQLiteCustomMilestoneRepo struct {
	db db.DBTX
}

// NewSQLiteCustomMilestoneRepo creates a new SQLiteCustomMilestoneRepo.
func NewSQLiteCustomMilestoneRepo(conn db.DBTX) *SQLiteCustomMilestoneRepo {
	return &SQLiteCustomMilestoneRepo{db: conn}
}

func (r *SQLiteCustomMilestoneRepo) Create(ctx context.Context, c *domain.CustomMilestone) error {
	now := time.Now().UTC().Truncate(time.Second)
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	query := `INSERT INTO custom_milestones (id, user_id, name, pathway_id, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		c.PathwayID,
		flag(c.Completed),
		c.CreatedAt.Format(stampLayout),
		c.UpdatedAt.Format(stampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting custom milestone: %w", err)
	}
	return nil
}

func (r *SQLiteCustomMilestoneRepo) ListByUser(ctx context.Context, userID string) ([]domain.CustomMilestone, error) {
	query := `SELECT id, user_id, name, pathway_id, completed, created_at, updated_at
		FROM custom_milestones WHERE user_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing custom milestones: %w", err)
	}
	defer rows.Close()

	var out []domain.CustomMilestone
	for rows.Next() {
		var c domain.CustomMilestone
		var completed int
		var createdAt, updatedAt string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.PathwayID, &completed, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning custom milestone row: %w", err)
		}
		c.Completed = completed != 0
		if c.CreatedAt, c.UpdatedAt, err = parseStamps(createdAt, updatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating custom milestones: %w", err)
	}
	return out, nil
}

func (r *SQLiteCustomMilestoneRepo) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE custom_milestones SET completed = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		flag(completed), stamp(), id, userID)
	if err != nil {
		return fmt.Errorf("updating custom milestone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking custom milestone update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("custom milestone %s: %w", id, ErrNotFound)
	}
	return nil
}
