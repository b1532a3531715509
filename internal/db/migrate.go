package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS countries (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestone_categories (
		name TEXT PRIMARY KEY
	)`,

	`INSERT OR IGNORE INTO milestone_categories (name) VALUES
		('Exam'), ('Certificate'), ('Placement'), ('Portfolio'), ('Course'), ('Training')`,

	`CREATE TABLE IF NOT EXISTS pathways (
		id                 TEXT PRIMARY KEY,
		code               TEXT NOT NULL UNIQUE,
		name               TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		estimated_duration TEXT NOT NULL DEFAULT '',
		target_role        TEXT NOT NULL DEFAULT '',
		country_code       TEXT REFERENCES countries(code),
		status             TEXT
		                   CHECK(status IS NULL OR status IN ('active','draft','archived')),
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id                  TEXT PRIMARY KEY,
		pathway_id          TEXT NOT NULL REFERENCES pathways(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		category            TEXT REFERENCES milestone_categories(name),
		is_required         INTEGER NOT NULL DEFAULT 1,
		order_index         INTEGER NOT NULL DEFAULT 0,
		evidence_types      TEXT NOT NULL DEFAULT '[]',
		resource_url        TEXT NOT NULL DEFAULT '',
		alternatives        TEXT NOT NULL DEFAULT '[]',
		estimated_duration  TEXT NOT NULL DEFAULT '',
		cost_estimate       TEXT NOT NULL DEFAULT '',
		verification_status TEXT NOT NULL DEFAULT '',
		last_verified_at    TEXT,
		status              TEXT
		                    CHECK(status IS NULL OR status IN ('active','draft','archived')),
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_pathway ON milestones(pathway_id)`,

	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id      TEXT PRIMARY KEY,
		specialty    TEXT NOT NULL DEFAULT '',
		pathway_refs TEXT NOT NULL DEFAULT '[]',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_milestones (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		milestone_id   TEXT NOT NULL,
		milestone_name TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'not_started'
		               CHECK(status IN ('not_started','todo','in_progress','done')),
		completed_at   TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		UNIQUE (user_id, milestone_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_milestones_user ON user_milestones(user_id)`,

	`CREATE TABLE IF NOT EXISTS custom_milestones (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		pathway_id TEXT NOT NULL DEFAULT '',
		completed  INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_custom_milestones_user ON custom_milestones(user_id)`,
}
