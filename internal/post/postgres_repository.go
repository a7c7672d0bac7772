package post

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

// Create inserts a new post record.
func (r *PostgresRepository) Create(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO posts (slug, title_pt, title_en, body_pt, body_en,
		                   cover_image_url, published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.Slug, p.TitlePT, p.TitleEN, p.BodyPT, p.BodyEN,
		p.CoverImageURL, p.Published, p.PublishedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("inserting post: %w", err)
	}

	return nil
}

// GetByID retrieves a single post by its UUID, published or not.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	query := `
		SELECT id, slug, title_pt, title_en, body_pt, body_en,
		       cover_image_url, published, published_at, created_at, updated_at
		FROM posts
		WHERE id = $1`

	var p Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Slug, &p.TitlePT, &p.TitleEN, &p.BodyPT, &p.BodyEN,
		&p.CoverImageURL, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("querying post: %w", err)
	}

	return &p, nil
}

// GetBySlug retrieves a published post by its slug.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	query := `
		SELECT id, slug, title_pt, title_en, body_pt, body_en,
		       cover_image_url, published, published_at, created_at, updated_at
		FROM posts
		WHERE slug = $1 AND published = TRUE`

	var p Post
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&p.ID, &p.Slug, &p.TitlePT, &p.TitleEN, &p.BodyPT, &p.BodyEN,
		&p.CoverImageURL, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("querying post by slug: %w", err)
	}

	return &p, nil
}

// List retrieves posts, newest first. publishedOnly restricts to the public
// surface's view.
func (r *PostgresRepository) List(ctx context.Context, publishedOnly bool) ([]Post, error) {
	query := `
		SELECT id, slug, title_pt, title_en, body_pt, body_en,
		       cover_image_url, published, published_at, created_at, updated_at
		FROM posts
		WHERE ($1 = FALSE OR published = TRUE)
		ORDER BY COALESCE(published_at, created_at) DESC`

	rows, err := r.pool.Query(ctx, query, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		err := rows.Scan(
			&p.ID, &p.Slug, &p.TitlePT, &p.TitleEN, &p.BodyPT, &p.BodyEN,
			&p.CoverImageURL, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating post rows: %w", err)
	}

	if posts == nil {
		posts = []Post{}
	}

	return posts, nil
}

// Update rewrites all mutable fields of a post.
func (r *PostgresRepository) Update(ctx context.Context, p *Post) error {
	query := `
		UPDATE posts
		SET slug = $2, title_pt = $3, title_en = $4, body_pt = $5, body_en = $6,
		    cover_image_url = $7, published = $8, published_at = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Slug, p.TitlePT, p.TitleEN, p.BodyPT, p.BodyEN,
		p.CoverImageURL, p.Published, p.PublishedAt,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPostNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("updating post: %w", err)
	}

	return nil
}

// Delete removes a post by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}
