package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"

	"github.com/cloudguides/leadcapture/internal/entity"
)

// SubmissionRepository performs the local writes for one form submission:
// contact upsert, lead upsert and association, all inside one transaction
// so a mid-sequence failure leaves no partial state.
type SubmissionRepository struct {
	DB *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// Record returns the resulting contact and lead, plus whether the contact
// was newly created. Resubmitting the same email never duplicates rows; a
// changed name overwrites the stored one.
func (r *SubmissionRepository) Record(ctx context.Context, email, firstName, route string) (*entity.Contact, *entity.Lead, bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, false, err
	}
	defer tx.Rollback()

	// xmax = 0 only holds for rows this transaction inserted, which is how
	// we distinguish create from update.
	contactQuery := `
		INSERT INTO contacts (id, first_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			updated_at = NOW()
		RETURNING id, first_name, email, created_at, updated_at, (xmax = 0)
	`

	contact := &entity.Contact{}
	var created bool
	err = tx.QueryRowContext(ctx, contactQuery, uuid.New().String(), firstName, email).
		Scan(&contact.ID, &contact.FirstName, &contact.Email, &contact.CreatedAt, &contact.UpdatedAt, &created)
	if err != nil {
		log.Printf("submissions: contact upsert failed: %v", err)
		return nil, nil, false, err
	}

	leadQuery := `
		INSERT INTO leads (id, route, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (route) DO UPDATE SET route = EXCLUDED.route
		RETURNING id, route, created_at, updated_at
	`

	lead := &entity.Lead{}
	err = tx.QueryRowContext(ctx, leadQuery, uuid.New().String(), route).
		Scan(&lead.ID, &lead.Route, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		log.Printf("submissions: lead upsert failed: %v", err)
		return nil, nil, false, err
	}

	assocQuery := `
		INSERT INTO contact_lead (contact_id, lead_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (contact_id, lead_id) DO NOTHING
	`

	if _, err := tx.ExecContext(ctx, assocQuery, contact.ID, lead.ID); err != nil {
		log.Printf("submissions: association insert failed: %v", err)
		return nil, nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, false, err
	}

	return contact, lead, created, nil
}
