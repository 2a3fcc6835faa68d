// Package contextstore holds the per-user transient reference text the
// chat features answer from. One entry per (user, domain); a new
// summarization overwrites the previous entry unconditionally.
//
// Concurrent requests for the same user race on this entry: the last
// writer wins and a reader sees whichever value is currently installed.
// That is accepted behavior (users are assumed to operate one session at
// a time), so the store guards against torn values, not against the race.
package contextstore

import (
	"context"

	"github.com/claro-labs/claro/internal/domain"
)

// Store is the conversational context cache contract.
type Store interface {
	// Put installs text as the user's context for the domain,
	// replacing any previous entry.
	Put(ctx context.Context, userID string, d domain.ContextDomain, text string) error
	// Get returns the user's context for the domain, and whether one exists.
	Get(ctx context.Context, userID string, d domain.ContextDomain) (string, bool, error)
}

func key(prefix, userID string, d domain.ContextDomain) string {
	return prefix + string(d) + ":" + userID
}
