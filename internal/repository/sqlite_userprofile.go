package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pathfinder/internal/db"
	"github.com/alexanderramin/pathfinder/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
// Custom milestones live in their own table and are not loaded here.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `SELECT user_id, specialty, pathway_refs, created_at, updated_at
		FROM user_profiles WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var p domain.UserProfile
	var refs, createdAt, updatedAt string
	err := row.Scan(&p.UserID, &p.Specialty, &refs, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user profile %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}

	if p.PathwayRefs, err = decodeStrings(refs); err != nil {
		return nil, fmt.Errorf("decoding pathway_refs: %w", err)
	}
	if p.CreatedAt, p.UpdatedAt, err = parseStamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	refs, err := encodeStrings(p.PathwayRefs)
	if err != nil {
		return fmt.Errorf("encoding pathway_refs: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query := `INSERT INTO user_profiles (user_id, specialty, pathway_refs, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			specialty = excluded.specialty,
			pathway_refs = excluded.pathway_refs,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		p.UserID,
		p.Specialty,
		refs,
		p.CreatedAt.Format(stampLayout),
		p.UpdatedAt.Format(stampLayout),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}

func (r *SQLiteUserProfileRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM user_profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("listing user profiles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user profiles: %w", err)
	}
	return ids, nil
}
