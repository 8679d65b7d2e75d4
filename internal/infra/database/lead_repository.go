package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/cloudguides/leadcapture/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// FindOrCreate upserts the lead bucket by route. The no-op DO UPDATE makes
// RETURNING yield the existing row, so concurrent first submissions for
// the same route are safe.
func (r *LeadRepository) FindOrCreate(ctx context.Context, route string) (*entity.Lead, error) {
	query := `
		INSERT INTO leads (id, route, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (route) DO UPDATE SET route = EXCLUDED.route
		RETURNING id, route, created_at, updated_at
	`

	lead := &entity.Lead{}
	err := r.DB.QueryRowContext(ctx, query, uuid.New().String(), route).
		Scan(&lead.ID, &lead.Route, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	query := `
		SELECT id, route, created_at, updated_at
		FROM leads
		ORDER BY route
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(&l.ID, &l.Route, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}

	return leads, rows.Err()
}
