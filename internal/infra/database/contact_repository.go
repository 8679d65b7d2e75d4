package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cloudguides/leadcapture/internal/entity"
)

const uniqueViolation = "23505"

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO contacts (id, first_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query, c.ID, c.FirstName, c.Email).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.ErrEmailAlreadyExists
		}
		log.Printf("contacts: insert failed: %v", err)
		return err
	}

	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	query := `
		SELECT id, first_name, email, created_at, updated_at
		FROM contacts
		WHERE id = $1
	`

	c := &entity.Contact{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.FirstName, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	leads, err := r.leadsFor(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Leads = leads

	return c, nil
}

func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	query := `
		SELECT id, first_name, email, created_at, updated_at
		FROM contacts
		WHERE email = $1
	`

	c := &entity.Contact{}
	err := r.DB.QueryRowContext(ctx, query, email).
		Scan(&c.ID, &c.FirstName, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

// List returns one page of contacts plus the total row count. Each contact
// carries its associated leads.
func (r *ContactRepository) List(ctx context.Context, page, perPage int) ([]entity.Contact, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 15
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, first_name, email, created_at, updated_at
		FROM contacts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range contacts {
		leads, err := r.leadsFor(ctx, contacts[i].ID)
		if err != nil {
			return nil, 0, err
		}
		contacts[i].Leads = leads
	}

	return contacts, total, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	query := `
		UPDATE contacts
		SET first_name = $2, email = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query, c.ID, c.FirstName, c.Email).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}

	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// AttachLeads adds associations, skipping pairs that already exist. A race
// on the unique (contact_id, lead_id) pair resolves to "already attached".
func (r *ContactRepository) AttachLeads(ctx context.Context, contactID string, leadIDs []string) error {
	query := `
		INSERT INTO contact_lead (contact_id, lead_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (contact_id, lead_id) DO NOTHING
	`

	for _, leadID := range leadIDs {
		if _, err := r.DB.ExecContext(ctx, query, contactID, leadID); err != nil {
			return err
		}
	}

	return nil
}

func (r *ContactRepository) DetachLeads(ctx context.Context, contactID string, leadIDs []string) error {
	query := `
		DELETE FROM contact_lead
		WHERE contact_id = $1 AND lead_id = ANY($2)
	`

	_, err := r.DB.ExecContext(ctx, query, contactID, pq.Array(leadIDs))
	return err
}

// SyncLeads replaces the contact's full association set in one transaction.
func (r *ContactRepository) SyncLeads(ctx context.Context, contactID string, leadIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contact_lead WHERE contact_id = $1`, contactID); err != nil {
		return err
	}

	insert := `
		INSERT INTO contact_lead (contact_id, lead_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (contact_id, lead_id) DO NOTHING
	`
	for _, leadID := range leadIDs {
		if _, err := tx.ExecContext(ctx, insert, contactID, leadID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ContactRepository) leadsFor(ctx context.Context, contactID string) ([]entity.Lead, error) {
	query := `
		SELECT l.id, l.route, l.created_at, l.updated_at
		FROM leads l
		JOIN contact_lead cl ON cl.lead_id = l.id
		WHERE cl.contact_id = $1
		ORDER BY l.route
	`

	rows, err := r.DB.QueryContext(ctx, query, contactID)
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
