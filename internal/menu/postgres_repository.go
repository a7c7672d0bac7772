package menu

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

// Create inserts a new menu item record.
func (r *PostgresRepository) Create(ctx context.Context, item *MenuItem) error {
	query := `
		INSERT INTO menu_items (name_pt, name_en, description_pt, description_en,
		                        category, price_cents, image_url, available, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.NamePT, item.NameEN, item.DescriptionPT, item.DescriptionEN,
		item.Category, item.PriceCents, item.ImageURL, item.Available, item.Position,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting menu item: %w", err)
	}

	return nil
}

// GetByID retrieves a single menu item by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	query := `
		SELECT id, name_pt, name_en, description_pt, description_en,
		       category, price_cents, image_url, available, position,
		       created_at, updated_at
		FROM menu_items
		WHERE id = $1`

	var item MenuItem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.NamePT, &item.NameEN, &item.DescriptionPT, &item.DescriptionEN,
		&item.Category, &item.PriceCents, &item.ImageURL, &item.Available, &item.Position,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("querying menu item: %w", err)
	}

	return &item, nil
}

// List retrieves menu items ordered by category and position.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]MenuItem, error) {
	query := `
		SELECT id, name_pt, name_en, description_pt, description_en,
		       category, price_cents, image_url, available, position,
		       created_at, updated_at
		FROM menu_items
		WHERE ($1 = FALSE OR available = TRUE)
		  AND ($2::text IS NULL OR category = $2)
		ORDER BY category ASC, position ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, filter.AvailableOnly, filter.Category)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var item MenuItem
		err := rows.Scan(
			&item.ID, &item.NamePT, &item.NameEN, &item.DescriptionPT, &item.DescriptionEN,
			&item.Category, &item.PriceCents, &item.ImageURL, &item.Available, &item.Position,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning menu item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu item rows: %w", err)
	}

	if items == nil {
		items = []MenuItem{}
	}

	return items, nil
}

// Update rewrites all mutable fields of a menu item.
func (r *PostgresRepository) Update(ctx context.Context, item *MenuItem) error {
	query := `
		UPDATE menu_items
		SET name_pt = $2, name_en = $3, description_pt = $4, description_en = $5,
		    category = $6, price_cents = $7, image_url = $8, available = $9,
		    position = $10, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.ID, item.NamePT, item.NameEN, item.DescriptionPT, item.DescriptionEN,
		item.Category, item.PriceCents, item.ImageURL, item.Available, item.Position,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrItemNotFound
		}
		return fmt.Errorf("updating menu item: %w", err)
	}

	return nil
}

// Delete removes a menu item by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM menu_items WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}
