// Package creations persists the generation history log.
package creations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claro-labs/claro/internal/domain"
)

// Log is the creation-log contract. Append is best-effort: callers log a
// failure and continue, so a broken database never fails a generation
// request.
type Log interface {
	Append(ctx context.Context, c domain.Creation) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Creation, error)
	Ping(ctx context.Context) error
}

// Repo stores creations in Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New connects to Postgres and returns the repo.
func New(ctx context.Context, dsn string) (*Repo, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Repo{pool: pool}, nil
}

// Close releases the connection pool.
func (r *Repo) Close() {
	if r != nil && r.pool != nil {
		r.pool.Close()
	}
}

// Append inserts one creation row.
func (r *Repo) Append(ctx context.Context, c domain.Creation) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO creations(user_id, prompt, content, type)
VALUES ($1, $2, $3, $4)`,
		c.UserID, c.Prompt, c.Content, string(c.Type))
	if err != nil {
		return fmt.Errorf("insert creation: %w", err)
	}
	return nil
}

// ListByUser returns the user's most recent creations, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Creation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, prompt, content, type, created_at
FROM creations
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query creations: %w", err)
	}
	defer rows.Close()

	var out []domain.Creation
	for rows.Next() {
		var c domain.Creation
		var typ string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Prompt, &c.Content, &typ, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan creation: %w", err)
		}
		c.Type = domain.CreationType(typ)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate creations: %w", err)
	}
	return out, nil
}

// Ping checks database availability.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}
