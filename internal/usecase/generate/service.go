// Package generate holds the single-call writing features: articles, blog
// titles, exam question sets, and resume reviews.
package generate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/claro-labs/claro/internal/domain"
)

const (
	fallbackContent = "No response"
	recentLimit     = 50
)

// Service runs the single-call generation features.
type Service struct {
	completer Completer
	log       CreationLog
	logger    *zap.Logger
}

// New creates a generate service.
func New(completer Completer, log CreationLog, logger *zap.Logger) *Service {
	return &Service{completer: completer, log: log, logger: logger}
}

// Article generates long-form text from the user's own prompt.
func (s *Service) Article(ctx context.Context, userID, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is required: %w", domain.ErrValidation)
	}

	content, err := s.completer.Complete(ctx, prompt, 0, 0)
	if err != nil {
		return "", fmt.Errorf("generate article: %w", err)
	}
	if content == "" {
		content = fallbackContent
	}

	s.appendCreation(ctx, domain.Creation{
		UserID:  userID,
		Prompt:  prompt,
		Content: content,
		Type:    domain.CreationArticle,
	})
	return content, nil
}

// BlogTitles generates five title suggestions for a topic.
func (s *Service) BlogTitles(ctx context.Context, userID, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", fmt.Errorf("topic is required: %w", domain.ErrValidation)
	}

	content, err := s.completer.Complete(ctx, "Generate 5 catchy blog titles about "+topic, 0, 0)
	if err != nil {
		return "", fmt.Errorf("generate blog titles: %w", err)
	}
	if content == "" {
		content = fallbackContent
	}

	s.appendCreation(ctx, domain.Creation{
		UserID:  userID,
		Prompt:  topic,
		Content: content,
		Type:    domain.CreationBlogTitle,
	})
	return content, nil
}

// ResumeReview critiques extracted resume text.
func (s *Service) ResumeReview(ctx context.Context, userID, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("resume text is empty: %w", domain.ErrValidation)
	}

	prompt := fmt.Sprintf(`Review this resume and provide strengths, weaknesses,
improvements, and formatting issues:

%s
`, text)

	content, err := s.completer.Complete(ctx, prompt, 0, 0)
	if err != nil {
		return "", fmt.Errorf("review resume: %w", err)
	}
	if content == "" {
		content = fallbackContent
	}

	s.appendCreation(ctx, domain.Creation{
		UserID:  userID,
		Prompt:  "Resume review",
		Content: content,
		Type:    domain.CreationResumeReview,
	})
	return content, nil
}

// Recent returns the caller's latest creation rows.
func (s *Service) Recent(ctx context.Context, userID string) ([]domain.Creation, error) {
	rows, err := s.log.ListByUser(ctx, userID, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("list creations: %w", err)
	}
	return rows, nil
}

// appendCreation records the result in the generation history. Failures
// are logged and swallowed so a broken log never fails the request.
func (s *Service) appendCreation(ctx context.Context, c domain.Creation) {
	if err := s.log.Append(ctx, c); err != nil {
		s.logger.Warn("creation append failed",
			zap.String("user_id", c.UserID), zap.String("type", string(c.Type)), zap.Error(err))
	}
}
