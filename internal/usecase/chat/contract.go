package chat

import (
	"context"

	"github.com/claro-labs/claro/internal/domain"
)

// Completer issues a single completion call against the model backend.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// ContextReader reads the user's stored reference text.
type ContextReader interface {
	Get(ctx context.Context, userID string, d domain.ContextDomain) (string, bool, error)
}

// CreationLog records answered questions in the generation history.
type CreationLog interface {
	Append(ctx context.Context, c domain.Creation) error
}
