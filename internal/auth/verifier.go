// Package auth resolves bearer tokens into caller identities.
package auth

import (
	"context"

	"github.com/claro-labs/claro/internal/domain"
)

// Verifier turns a bearer token into a caller identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}
