package generate

import (
	"context"

	"github.com/claro-labs/claro/internal/domain"
)

// Completer issues a single completion call against the model backend.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// CreationLog records results in the generation history and serves the
// caller's recent rows.
type CreationLog interface {
	Append(ctx context.Context, c domain.Creation) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Creation, error)
}
