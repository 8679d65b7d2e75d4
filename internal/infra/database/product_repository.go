package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cloudguides/leadcapture/internal/entity"
)

type StripeProductRepository struct {
	DB *sql.DB
}

func NewStripeProductRepository(db *sql.DB) *StripeProductRepository {
	return &StripeProductRepository{DB: db}
}

func (r *StripeProductRepository) Create(ctx context.Context, p *entity.StripeProduct) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO stripe_products (id, stripe_id, name, description, image, price, currency, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		p.ID, p.StripeID, p.Name, p.Description, p.Image, p.Price, p.Currency, p.Active,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.ErrDuplicate
		}
		return err
	}

	return nil
}

func (r *StripeProductRepository) FindByID(ctx context.Context, id string) (*entity.StripeProduct, error) {
	query := `
		SELECT id, stripe_id, name, COALESCE(description, ''), COALESCE(image, ''), price, currency, active, created_at, updated_at
		FROM stripe_products
		WHERE id = $1
	`

	p := &entity.StripeProduct{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.StripeID, &p.Name, &p.Description, &p.Image,
		&p.Price, &p.Currency, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *StripeProductRepository) ListActive(ctx context.Context) ([]entity.StripeProduct, error) {
	query := `
		SELECT id, stripe_id, name, COALESCE(description, ''), COALESCE(image, ''), price, currency, active, created_at, updated_at
		FROM stripe_products
		WHERE active = TRUE
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.StripeProduct
	for rows.Next() {
		var p entity.StripeProduct
		err := rows.Scan(
			&p.ID, &p.StripeID, &p.Name, &p.Description, &p.Image,
			&p.Price, &p.Currency, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *StripeProductRepository) Update(ctx context.Context, p *entity.StripeProduct) error {
	query := `
		UPDATE stripe_products
		SET name = $2, description = $3, image = $4, price = $5, currency = $6, active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.Image, p.Price, p.Currency, p.Active,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrNotFound
		}
		return err
	}

	return nil
}

func (r *StripeProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM stripe_products WHERE id = $1`, id)
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
