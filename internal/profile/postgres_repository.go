package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

// GetByID retrieves a single profile by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	query := `
		SELECT id, email, role, full_name, created_at, updated_at
		FROM profiles
		WHERE id = $1`

	var p Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.Role, &p.FullName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("querying profile by id: %w", err)
	}

	return &p, nil
}

// GetByEmail retrieves a single profile by its email address.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	query := `
		SELECT id, email, role, full_name, created_at, updated_at
		FROM profiles
		WHERE email = $1`

	var p Profile
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&p.ID, &p.Email, &p.Role, &p.FullName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("querying profile by email: %w", err)
	}

	return &p, nil
}

// Upsert inserts the profile or updates the existing row with the same id.
// Keyed by primary id, so repeating the call with the same identity is safe.
func (r *PostgresRepository) Upsert(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (id, email, role, full_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    role = EXCLUDED.role,
		    updated_at = now()
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, p.ID, p.Email, p.Role, p.FullName).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("upserting profile: %w", err)
	}

	return nil
}

// List retrieves all profiles ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]Profile, error) {
	query := `
		SELECT id, email, role, full_name, created_at, updated_at
		FROM profiles
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		err := rows.Scan(&p.ID, &p.Email, &p.Role, &p.FullName, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile rows: %w", err)
	}

	if profiles == nil {
		profiles = []Profile{}
	}

	return profiles, nil
}

// UpdateRole changes the role of the profile with the given id.
func (r *PostgresRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*Profile, error) {
	query := `
		UPDATE profiles
		SET role = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, email, role, full_name, created_at, updated_at`

	var p Profile
	err := r.pool.QueryRow(ctx, query, id, role).Scan(
		&p.ID, &p.Email, &p.Role, &p.FullName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("updating profile role: %w", err)
	}

	return &p, nil
}

// Delete removes a profile by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM profiles WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}
