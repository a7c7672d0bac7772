package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new product record.
func (r *PostgresRepository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (name_pt, name_en, description_pt, description_en,
		                      price_cents, image_url, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.NamePT, p.NameEN, p.DescriptionPT, p.DescriptionEN,
		p.PriceCents, p.ImageURL, p.Available,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

// GetByID retrieves a single product by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `
		SELECT id, name_pt, name_en, description_pt, description_en,
		       price_cents, image_url, available, created_at, updated_at
		FROM products
		WHERE id = $1`

	var p Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.NamePT, &p.NameEN, &p.DescriptionPT, &p.DescriptionEN,
		&p.PriceCents, &p.ImageURL, &p.Available, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("querying product: %w", err)
	}

	return &p, nil
}

// List retrieves products ordered by name.
func (r *PostgresRepository) List(ctx context.Context, availableOnly bool) ([]Product, error) {
	query := `
		SELECT id, name_pt, name_en, description_pt, description_en,
		       price_cents, image_url, available, created_at, updated_at
		FROM products
		WHERE ($1 = FALSE OR available = TRUE)
		ORDER BY name_pt ASC`

	rows, err := r.pool.Query(ctx, query, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		err := rows.Scan(
			&p.ID, &p.NamePT, &p.NameEN, &p.DescriptionPT, &p.DescriptionEN,
			&p.PriceCents, &p.ImageURL, &p.Available, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	if products == nil {
		products = []Product{}
	}

	return products, nil
}

// Update rewrites all mutable fields of a product.
func (r *PostgresRepository) Update(ctx context.Context, p *Product) error {
	query := `
		UPDATE products
		SET name_pt = $2, name_en = $3, description_pt = $4, description_en = $5,
		    price_cents = $6, image_url = $7, available = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.NamePT, p.NameEN, p.DescriptionPT, p.DescriptionEN,
		p.PriceCents, p.ImageURL, p.Available,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

// Delete removes a product by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}
