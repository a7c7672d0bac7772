package room

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

// Create inserts a new room record.
func (r *PostgresRepository) Create(ctx context.Context, rm *Room) error {
	query := `
		INSERT INTO rooms (name_pt, name_en, description_pt, description_en,
		                   capacity, price_cents_per_night, image_urls, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		rm.NamePT, rm.NameEN, rm.DescriptionPT, rm.DescriptionEN,
		rm.Capacity, rm.PriceCentsPerNight, rm.ImageURLs, rm.Available,
	).Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting room: %w", err)
	}

	return nil
}

// GetByID retrieves a single room by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	query := `
		SELECT id, name_pt, name_en, description_pt, description_en,
		       capacity, price_cents_per_night, image_urls, available,
		       created_at, updated_at
		FROM rooms
		WHERE id = $1`

	var rm Room
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rm.ID, &rm.NamePT, &rm.NameEN, &rm.DescriptionPT, &rm.DescriptionEN,
		&rm.Capacity, &rm.PriceCentsPerNight, &rm.ImageURLs, &rm.Available,
		&rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("querying room: %w", err)
	}

	return &rm, nil
}

// List retrieves rooms ordered by nightly price.
func (r *PostgresRepository) List(ctx context.Context, availableOnly bool) ([]Room, error) {
	query := `
		SELECT id, name_pt, name_en, description_pt, description_en,
		       capacity, price_cents_per_night, image_urls, available,
		       created_at, updated_at
		FROM rooms
		WHERE ($1 = FALSE OR available = TRUE)
		ORDER BY price_cents_per_night ASC, name_pt ASC`

	rows, err := r.pool.Query(ctx, query, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var rm Room
		err := rows.Scan(
			&rm.ID, &rm.NamePT, &rm.NameEN, &rm.DescriptionPT, &rm.DescriptionEN,
			&rm.Capacity, &rm.PriceCentsPerNight, &rm.ImageURLs, &rm.Available,
			&rm.CreatedAt, &rm.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning room row: %w", err)
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating room rows: %w", err)
	}

	if rooms == nil {
		rooms = []Room{}
	}

	return rooms, nil
}

// Update rewrites all mutable fields of a room.
func (r *PostgresRepository) Update(ctx context.Context, rm *Room) error {
	query := `
		UPDATE rooms
		SET name_pt = $2, name_en = $3, description_pt = $4, description_en = $5,
		    capacity = $6, price_cents_per_night = $7, image_urls = $8,
		    available = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		rm.ID, rm.NamePT, rm.NameEN, rm.DescriptionPT, rm.DescriptionEN,
		rm.Capacity, rm.PriceCentsPerNight, rm.ImageURLs, rm.Available,
	).Scan(&rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("updating room: %w", err)
	}

	return nil
}

// Delete removes a room by its UUID. Bookings referencing it keep their
// history with a null room id (FK SET NULL).
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rooms WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRoomNotFound
	}

	return nil
}
