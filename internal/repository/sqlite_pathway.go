package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/pathfinder/internal/db"
	"github.com/alexanderramin/pathfinder/internal/domain"
)

// SQLitePathwayRepo implements PathwayRepo using a SQLite database. It also
// satisfies registry.Source.
type SQLitePathwayRepo struct {
	db db.DBTX
}

// NewSQLitePathwayRepo creates a new SQLitePathwayRepo.
func NewSQLitePathwayRepo(conn db.DBTX) *SQLitePathwayRepo {
	return &SQLitePathwayRepo{db: conn}
}

func (r *SQLitePathwayRepo) FetchPathwayRecords(ctx context.Context) ([]domain.PathwayRecord, error) {
	query := `SELECT p.id, p.code, p.name, p.description, p.estimated_duration, p.target_role,
		p.status, c.code, c.name
		FROM pathways p LEFT JOIN countries c ON c.code = p.country_code
		ORDER BY p.created_at, p.code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing pathways: %w", err)
	}
	defer rows.Close()

	var records []domain.PathwayRecord
	index := make(map[string]int)
	for rows.Next() {
		var p domain.PathwayRecord
		var status, countryCode, countryName sql.NullString
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.Description, &p.EstimatedDuration, &p.TargetRole,
			&status, &countryCode, &countryName,
		); err != nil {
			return nil, fmt.Errorf("scanning pathway row: %w", err)
		}
		if status.Valid {
			p.Status = domain.StatusPtr(domain.RecordStatus(status.String))
		}
		if countryCode.Valid {
			p.Country = &domain.CountryRecord{Code: countryCode.String, Name: countryName.String}
		}
		index[p.ID] = len(records)
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pathways: %w", err)
	}

	if err := r.attachMilestones(ctx, records, index); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *SQLitePathwayRepo) attachMilestones(ctx context.Context, records []domain.PathwayRecord, index map[string]int) error {
	query := `SELECT id, pathway_id, name, description, category, is_required, order_index,
		evidence_types, resource_url, alternatives, estimated_duration, cost_estimate,
		verification_status, last_verified_at, status
		FROM milestones ORDER BY pathway_id, order_index, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, pathwayID, err := scanMilestone(rows)
		if err != nil {
			return err
		}
		i, ok := index[pathwayID]
		if !ok {
			continue
		}
		records[i].Milestones = append(records[i].Milestones, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating milestones: %w", err)
	}
	return nil
}

func scanMilestone(rows *sql.Rows) (domain.MilestoneRecord, string, error) {
	var m domain.MilestoneRecord
	var pathwayID, evidence, alternatives string
	var category, lastVerified, status sql.NullString
	var required int

	err := rows.Scan(
		&m.ID, &pathwayID, &m.Name, &m.Description, &category, &required, &m.Order,
		&evidence, &m.ResourceURL, &alternatives, &m.EstimatedDuration, &m.CostEstimate,
		&m.VerificationStatus, &lastVerified, &status,
	)
	if err != nil {
		return m, "", fmt.Errorf("scanning milestone row: %w", err)
	}

	m.IsRequired = required != 0
	if category.Valid && category.String != "" {
		m.Category = &domain.CategoryRecord{Name: category.String}
	}
	if status.Valid {
		m.Status = domain.StatusPtr(domain.RecordStatus(status.String))
	}
	m.LastVerifiedAt = optionalTime(lastVerified)

	if m.EvidenceTypes, err = decodeStrings(evidence); err != nil {
		return m, "", fmt.Errorf("decoding evidence_types for milestone %s: %w", m.ID, err)
	}
	if m.Alternatives, err = decodeStrings(alternatives); err != nil {
		return m, "", fmt.Errorf("decoding alternatives for milestone %s: %w", m.ID, err)
	}
	return m, pathwayID, nil
}

// UpsertPathways writes each record keyed by its code. Milestones missing
// from a record are archived rather than deleted so user progress keeps
// pointing at a row. Callers wanting atomicity pass a tx-backed DBTX.
func (r *SQLitePathwayRepo) UpsertPathways(ctx context.Context, records []domain.PathwayRecord) error {
	for i := range records {
		if err := r.upsertPathway(ctx, &records[i]); err != nil {
			return fmt.Errorf("upserting pathway %s: %w", records[i].Code, err)
		}
	}
	return nil
}

func (r *SQLitePathwayRepo) upsertPathway(ctx context.Context, p *domain.PathwayRecord) error {
	now := stamp()

	var countryCode interface{}
	if p.Country != nil && p.Country.Code != "" {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO countries (code, name) VALUES (?, ?)
			ON CONFLICT(code) DO UPDATE SET name = excluded.name`,
			p.Country.Code, p.Country.Name)
		if err != nil {
			return fmt.Errorf("upserting country: %w", err)
		}
		countryCode = p.Country.Code
	}

	var status interface{}
	if p.Status != nil {
		status = string(*p.Status)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pathways (id, code, name, description, estimated_duration, target_role,
			country_code, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			estimated_duration = excluded.estimated_duration,
			target_role = excluded.target_role,
			country_code = excluded.country_code,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		p.ID, p.Code, p.Name, p.Description, p.EstimatedDuration, p.TargetRole,
		countryCode, status, now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting pathway: %w", err)
	}

	// The stored id wins when the code already existed.
	var pathwayID string
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM pathways WHERE code = ?`, p.Code).Scan(&pathwayID); err != nil {
		return fmt.Errorf("reading pathway id: %w", err)
	}
	p.ID = pathwayID

	keep := make(map[string]bool, len(p.Milestones))
	for _, m := range p.Milestones {
		if err := r.upsertMilestone(ctx, pathwayID, m, now); err != nil {
			return err
		}
		keep[m.ID] = true
	}
	return r.archiveMissing(ctx, pathwayID, keep, now)
}

func (r *SQLitePathwayRepo) upsertMilestone(ctx context.Context, pathwayID string, m domain.MilestoneRecord, now string) error {
	evidence, err := encodeStrings(m.EvidenceTypes)
	if err != nil {
		return fmt.Errorf("encoding evidence_types: %w", err)
	}
	alternatives, err := encodeStrings(m.Alternatives)
	if err != nil {
		return fmt.Errorf("encoding alternatives: %w", err)
	}

	var category interface{}
	if m.Category != nil {
		category = optionalTextArg(m.Category.Name)
	}
	var status interface{}
	if m.Status != nil {
		status = string(*m.Status)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO milestones (id, pathway_id, name, description, category, is_required,
			order_index, evidence_types, resource_url, alternatives, estimated_duration,
			cost_estimate, verification_status, last_verified_at, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pathway_id = excluded.pathway_id,
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			is_required = excluded.is_required,
			order_index = excluded.order_index,
			evidence_types = excluded.evidence_types,
			resource_url = excluded.resource_url,
			alternatives = excluded.alternatives,
			estimated_duration = excluded.estimated_duration,
			cost_estimate = excluded.cost_estimate,
			verification_status = excluded.verification_status,
			last_verified_at = excluded.last_verified_at,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		m.ID, pathwayID, m.Name, m.Description, category, flag(m.IsRequired),
		m.Order, evidence, m.ResourceURL, alternatives, m.EstimatedDuration,
		m.CostEstimate, m.VerificationStatus, optionalTimeArg(m.LastVerifiedAt),
		status, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting milestone %s: %w", m.Name, err)
	}
	return nil
}

func (r *SQLitePathwayRepo) archiveMissing(ctx context.Context, pathwayID string, keep map[string]bool, now string) error {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM milestones WHERE pathway_id = ?`, pathwayID)
	if err != nil {
		return fmt.Errorf("listing existing milestones: %w", err)
	}
	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning milestone id: %w", err)
		}
		if !keep[id] {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating milestone ids: %w", err)
	}
	rows.Close()

	for _, id := range stale {
		_, err := r.db.ExecContext(ctx,
			`UPDATE milestones SET status = 'archived', updated_at = ? WHERE id = ?`, now, id)
		if err != nil {
			return fmt.Errorf("archiving milestone %s: %w", id, err)
		}
	}
	return nil
}

func (r *SQLitePathwayRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM milestone_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return names, nil
}
