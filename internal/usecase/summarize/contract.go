package summarize

import (
	"context"

	"github.com/claro-labs/claro/internal/domain"
)

// Completer issues a single completion call against the model backend.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// ContextWriter stores reference text for later chat questions.
type ContextWriter interface {
	Put(ctx context.Context, userID string, d domain.ContextDomain, text string) error
}

// VideoFetcher resolves a video URL or ID into flattened metadata text.
type VideoFetcher interface {
	Fetch(ctx context.Context, urlOrID string) (domain.VideoMetadata, error)
}

// CreationLog records finished summaries in the generation history.
type CreationLog interface {
	Append(ctx context.Context, c domain.Creation) error
}
