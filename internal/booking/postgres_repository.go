package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// Create inserts a new booking record in pending status.
func (r *PostgresRepository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (kind, room_id, guest_name, guest_email, guest_phone,
		                      party_size, starts_on, ends_on, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, status, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		b.Kind, b.RoomID, b.GuestName, b.GuestEmail, b.GuestPhone,
		b.PartySize, b.StartsOn, b.EndsOn, b.Notes, StatusPending,
	).Scan(&b.ID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}

	return nil
}

// GetByID retrieves a single booking by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `
		SELECT id, kind, room_id, guest_name, guest_email, guest_phone,
		       party_size, starts_on, ends_on, notes, status, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	var b Booking
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Kind, &b.RoomID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&b.PartySize, &b.StartsOn, &b.EndsOn, &b.Notes, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("querying booking: %w", err)
	}

	return &b, nil
}

// List retrieves bookings, newest request first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Booking, error) {
	query := `
		SELECT id, kind, room_id, guest_name, guest_email, guest_phone,
		       party_size, starts_on, ends_on, notes, status, created_at, updated_at
		FROM bookings
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR kind = $2)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, filter.Status, filter.Kind)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		err := rows.Scan(
			&b.ID, &b.Kind, &b.RoomID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
			&b.PartySize, &b.StartsOn, &b.EndsOn, &b.Notes, &b.Status,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}

	if bookings == nil {
		bookings = []Booking{}
	}

	return bookings, nil
}

// UpdateStatus moves a pending booking to the given status. Non-pending
// bookings return ErrInvalidTransition.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Booking, error) {
	if !ValidTransition(StatusPending, status) {
		return nil, ErrInvalidTransition
	}

	query := `
		UPDATE bookings
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
		RETURNING id, kind, room_id, guest_name, guest_email, guest_phone,
		          party_size, starts_on, ends_on, notes, status, created_at, updated_at`

	var b Booking
	err := r.pool.QueryRow(ctx, query, id, status, StatusPending).Scan(
		&b.ID, &b.Kind, &b.RoomID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&b.PartySize, &b.StartsOn, &b.EndsOn, &b.Notes, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing row from a non-pending one.
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, ErrInvalidTransition
			} else if errors.Is(getErr, ErrBookingNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, fmt.Errorf("updating booking status: %w", err)
		}
		return nil, fmt.Errorf("updating booking status: %w", err)
	}

	return &b, nil
}

// Delete removes a booking by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CancelPendingBefore cancels pending bookings created before the cutoff.
func (r *PostgresRepository) CancelPendingBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE status = $2 AND created_at < $3`

	result, err := r.pool.Exec(ctx, query, StatusCancelled, StatusPending, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cancelling stale pending bookings: %w", err)
	}

	return int(result.RowsAffected()), nil
}
