package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/pathfinder/internal/db"
	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/google/uuid"
)

// SQLiteUserMilestoneRepo implements UserMilestoneRepo using a SQLite database.
type SQLiteUserMilestoneRepo struct {
	db db.DBTX
}

// NewSQLiteUserMilestoneRepo creates a new SQLiteUserMilestoneRepo.
func NewSQLiteUserMilestoneRepo(conn db.DBTX) *SQLiteUserMilestoneRepo {
	return &SQLiteUserMilestoneRepo{db: conn}
}

func (r *SQLiteUserMilestoneRepo) ListByUser(ctx context.Context, userID string) ([]domain.UserMilestoneRecord, error) {
	query := `SELECT id, user_id, milestone_id, milestone_name, status, completed_at, created_at, updated_at
		FROM user_milestones WHERE user_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user milestones: %w", err)
	}
	defer rows.Close()

	records := []domain.UserMilestoneRecord{}
	for rows.Next() {
		var rec domain.UserMilestoneRecord
		var status, createdAt, updatedAt string
		var completedAt sql.NullString
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.MilestoneID, &rec.MilestoneName,
			&status, &completedAt, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning user milestone row: %w", err)
		}
		rec.Status = domain.MilestoneStatus(status)
		rec.CompletedAt = optionalTime(completedAt)
		if rec.CreatedAt, rec.UpdatedAt, err = parseStamps(createdAt, updatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user milestones: %w", err)
	}
	return records, nil
}

// Upsert writes the record keyed by (user, milestone). A fresh ID is
// assigned when the record has none; the stored ID survives conflicts.
func (r *SQLiteUserMilestoneRepo) Upsert(ctx context.Context, rec *domain.UserMilestoneRecord) error {
	now := time.Now().UTC().Truncate(time.Second)
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	query := `INSERT INTO user_milestones (id, user_id, milestone_id, milestone_name, status,
			completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, milestone_id) DO UPDATE SET
			milestone_name = excluded.milestone_name,
			status = excluded.status,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.MilestoneID,
		rec.MilestoneName,
		string(rec.Status),
		optionalTimeArg(rec.CompletedAt),
		rec.CreatedAt.Format(stampLayout),
		rec.UpdatedAt.Format(stampLayout),
	)
	if err != nil {
		return fmt.Errorf("upserting user milestone: %w", err)
	}
	return nil
}
