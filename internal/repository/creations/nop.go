package creations

import (
	"context"

	"github.com/claro-labs/claro/internal/domain"
)

// Nop is the creation log used when no database is configured. Appends
// succeed without storing anything and listings are empty, so generation
// features work in a database-less deployment.
type Nop struct{}

func (Nop) Append(context.Context, domain.Creation) error { return nil }

func (Nop) ListByUser(context.Context, string, int) ([]domain.Creation, error) {
	return nil, nil
}

func (Nop) Ping(context.Context) error { return nil }
