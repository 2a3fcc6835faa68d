// Package chat answers user questions grounded strictly in the reference
// text a previous summarization stored for them.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/claro-labs/claro/internal/domain"
)

const fallbackAnswer = "No answer found"

// Service answers questions from stored context.
type Service struct {
	store     ContextReader
	completer Completer
	log       CreationLog
	logger    *zap.Logger
}

// New creates a chat service.
func New(store ContextReader, completer Completer, log CreationLog, logger *zap.Logger) *Service {
	return &Service{store: store, completer: completer, log: log, logger: logger}
}

// Ask answers question from the caller's stored context for d. The store
// is checked before any completion call: with no entry the backend is
// never invoked and ErrNoContext is returned.
func (s *Service) Ask(ctx context.Context, userID string, d domain.ContextDomain, question string) (string, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return "", fmt.Errorf("question is empty: %w", domain.ErrValidation)
	}

	reference, ok, err := s.store.Get(ctx, userID, d)
	if err != nil {
		return "", fmt.Errorf("load %s context: %w", d, err)
	}
	if !ok {
		return "", fmt.Errorf("no %s context for user: %w", d, domain.ErrNoContext)
	}

	var (
		prompt      string
		maxTokens   int
		temperature float32
	)
	switch d {
	case domain.ContextVideo:
		prompt = videoPrompt(reference, q)
		maxTokens, temperature = 900, 0.4
	default:
		prompt = documentPrompt(reference, q)
		maxTokens, temperature = 800, 0.5
	}

	answer, err := s.completer.Complete(ctx, prompt, maxTokens, temperature)
	if err != nil {
		return "", fmt.Errorf("answer %s question: %w", d, err)
	}
	if answer == "" {
		answer = fallbackAnswer
	}

	// Video chats land in the generation history; best-effort, a broken
	// log never fails the request.
	if d == domain.ContextVideo {
		c := domain.Creation{UserID: userID, Prompt: q, Content: answer, Type: domain.CreationVideoChat}
		if err := s.log.Append(ctx, c); err != nil {
			s.logger.Warn("creation append failed",
				zap.String("user_id", userID), zap.String("type", string(c.Type)), zap.Error(err))
		}
	}
	return answer, nil
}

func documentPrompt(reference, question string) string {
	return fmt.Sprintf(`Answer the user's question using ONLY the PDF content.

PDF CONTENT:
%s

QUESTION: %s
`, reference, question)
}

func videoPrompt(reference, question string) string {
	return fmt.Sprintf(`You are a helpful assistant that answers strictly from the given YouTube metadata (title, description, tags, stats, and top comments).
If an answer is not found in metadata, say so.

Metadata:
"""
%s
"""

User question: %q
Answer clearly and concisely.`, reference, question)
}
