// Package summarize condenses long reference text with a map-reduce pass
// over the completion backend.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/claro-labs/claro/internal/domain"
)

const (
	chunkSize    = 7000
	mapTokens    = 800
	reduceTokens = 1200
	temperature  = 0.5

	partialsJoiner  = "\n\n---\n\n"
	fallbackSummary = "No summary generated"
)

// Service runs map-reduce summarization and the document/video flows
// built on it.
type Service struct {
	completer Completer
	store     ContextWriter
	videos    VideoFetcher
	log       CreationLog
	logger    *zap.Logger
}

// New creates a summarize service.
func New(completer Completer, store ContextWriter, videos VideoFetcher, log CreationLog, logger *zap.Logger) *Service {
	return &Service{
		completer: completer,
		store:     store,
		videos:    videos,
		log:       log,
		logger:    logger,
	}
}

// Document stores text as the user's document context and summarizes it.
// The context is installed before summarization so a follow-up chat works
// even if this request later fails on the completion backend.
func (s *Service) Document(ctx context.Context, userID, text string, detail domain.DetailLevel) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("document text is empty: %w", domain.ErrValidation)
	}

	if err := s.store.Put(ctx, userID, domain.ContextDocument, text); err != nil {
		return "", fmt.Errorf("store document context: %w", err)
	}

	summary, err := s.Summarize(ctx, text, detail)
	if err != nil {
		return "", err
	}

	s.appendCreation(ctx, domain.Creation{
		UserID:  userID,
		Prompt:  "PDF | " + string(detail),
		Content: summary,
		Type:    domain.CreationDocumentSum,
	})
	return summary, nil
}

// Video resolves urlOrID into flattened metadata, stores it as the user's
// video context, and summarizes it. The returned source reports whether
// the metadata came from the catalog or the page-scrape fallback.
func (s *Service) Video(ctx context.Context, userID, urlOrID string, detail domain.DetailLevel) (summary, source string, err error) {
	if strings.TrimSpace(urlOrID) == "" {
		return "", "", fmt.Errorf("missing url or video id: %w", domain.ErrValidation)
	}

	meta, err := s.videos.Fetch(ctx, urlOrID)
	if err != nil {
		return "", "", fmt.Errorf("fetch video metadata: %w", err)
	}

	if err := s.store.Put(ctx, userID, domain.ContextVideo, meta.Text); err != nil {
		return "", "", fmt.Errorf("store video context: %w", err)
	}

	summary, err = s.Summarize(ctx, meta.Text, detail)
	if err != nil {
		return "", "", err
	}

	s.appendCreation(ctx, domain.Creation{
		UserID:  userID,
		Prompt:  meta.VideoID + " | " + string(detail),
		Content: summary,
		Type:    domain.CreationVideoSummary,
	})
	return summary, meta.Source, nil
}

// appendCreation records the result in the generation history. Failures
// are logged and swallowed so a broken log never fails the request.
func (s *Service) appendCreation(ctx context.Context, c domain.Creation) {
	if err := s.log.Append(ctx, c); err != nil {
		s.logger.Warn("creation append failed",
			zap.String("user_id", c.UserID), zap.String("type", string(c.Type)), zap.Error(err))
	}
}

// Summarize splits text into fixed-size chunks, summarizes each chunk into
// bullet notes, then combines the notes into one final summary at the
// requested detail level. Map calls run strictly in order and each sees
// only its own chunk; the first map failure aborts the whole pass.
func (s *Service) Summarize(ctx context.Context, text string, detail domain.DetailLevel) (string, error) {
	chunks := domain.Chunk(text, chunkSize)

	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		partial, err := s.completer.Complete(ctx, mapPrompt(i+1, len(chunks), chunk), mapTokens, temperature)
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		// Empty partials are kept so note positions still line up with
		// chunk order in the combine prompt.
		partials = append(partials, partial)
	}

	final, err := s.completer.Complete(ctx, reducePrompt(detail, partials), reduceTokens, temperature)
	if err != nil {
		return "", fmt.Errorf("combine chunk notes: %w", err)
	}
	if final == "" {
		return fallbackSummary, nil
	}
	return final, nil
}

func mapPrompt(i, n int, chunk string) string {
	return fmt.Sprintf(`You are a precise note-maker.
Chunk %d/%d of the source material is below.
Summarize ONLY this chunk into sharp bullet notes. Avoid repetition.

Chunk:
"""
%s
"""
Return bullets only.`, i, n, chunk)
}

func reducePrompt(detail domain.DetailLevel, partials []string) string {
	return fmt.Sprintf(`You are combining notes into a final summary.
%s

Chunk notes:
%s

Final summary:`, detail.Instruction(), strings.Join(partials, partialsJoiner))
}
