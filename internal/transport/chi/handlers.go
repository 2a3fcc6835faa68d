package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claro-labs/claro/internal/domain"
	"github.com/claro-labs/claro/internal/extract"
	generateuc "github.com/claro-labs/claro/internal/usecase/generate"
)

// caller returns the authenticated identity or rejects the request.
func (s *Server) caller(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	id, ok := identityFrom(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, msgUnauthorized)
		return domain.Identity{}, false
	}
	return id, true
}

// premiumCaller additionally enforces the premium tier.
func (s *Server) premiumCaller(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	id, ok := s.caller(w, r)
	if !ok {
		return domain.Identity{}, false
	}
	if !id.IsPremium() {
		writeFailure(w, http.StatusOK, msgPremiumOnly)
		return domain.Identity{}, false
	}
	return id, true
}

// summarizeDocument handles POST /api/ai/summarize-document.
func (s *Server) summarizeDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := s.premiumCaller(w, r)
	if !ok {
		return
	}

	path, cleanup, err := s.stageUpload(r, "document")
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeFailure(w, http.StatusOK, "PDF file is required")
			return
		}
		s.handleDomainError(w, err)
		return
	}
	defer cleanup()

	text, err := extract.PDFText(path)
	if err != nil {
		writeFailure(w, http.StatusOK, msgUnreadablePDF)
		return
	}

	detail := domain.ParseDetailLevel(r.FormValue("detail"))
	content, err := s.summaries.Document(r.Context(), id.UserID, text, detail)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeContent(w, content)
}

// documentChat handles POST /api/ai/document-chat.
func (s *Server) documentChat(w http.ResponseWriter, r *http.Request) {
	id, ok := s.premiumCaller(w, r)
	if !ok {
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusOK, msgAskQuestion)
		return
	}

	answer, err := s.chats.Ask(r.Context(), id.UserID, domain.ContextDocument, req.Question)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, http.StatusOK, msgAskQuestion)
	case errors.Is(err, domain.ErrNoContext):
		writeFailure(w, http.StatusOK, msgNoDocumentCtx)
	case err != nil:
		s.handleDomainError(w, err)
	default:
		writeAnswer(w, answer)
	}
}

// summarizeVideo handles POST /api/ai/summarize-video.
func (s *Server) summarizeVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := s.premiumCaller(w, r)
	if !ok {
		return
	}

	var req struct {
		URL     string `json:"url"`
		Link    string `json:"link"`
		VideoID string `json:"videoId"`
		Detail  string `json:"detail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusOK, msgMissingVideoRef)
		return
	}

	raw := req.URL
	if raw == "" {
		raw = req.Link
	}
	if raw == "" {
		raw = req.VideoID
	}

	summary, source, err := s.summaries.Video(r.Context(), id.UserID, raw, domain.ParseDetailLevel(req.Detail))
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, http.StatusOK, msgMissingVideoRef)
	case err != nil:
		s.handleDomainError(w, err)
	default:
		writeJSON(w, http.StatusOK, envelope{Success: true, Content: summary, Used: source})
	}
}

// videoChat handles POST /api/ai/video-chat.
func (s *Server) videoChat(w http.ResponseWriter, r *http.Request) {
	id, ok := s.premiumCaller(w, r)
	if !ok {
		return
	}

	var req struct {
		Question string `json:"question"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusOK, "Please provide a question")
		return
	}
	question := req.Question
	if question == "" {
		question = req.Message
	}

	answer, err := s.chats.Ask(r.Context(), id.UserID, domain.ContextVideo, question)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, http.StatusOK, "Please provide a question")
	case errors.Is(err, domain.ErrNoContext):
		writeFailure(w, http.StatusOK, msgNoVideoCtx)
	case err != nil:
		s.handleDomainError(w, err)
	default:
		writeAnswer(w, answer)
	}
}

// generateArticle handles POST /api/ai/generate-article.
func (s *Server) generateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := s.caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusOK, "Prompt is required")
		return
	}

	content, err := s.generator.Article(r.Context(), id.UserID, req.Prompt)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, http.StatusOK, "Prompt is required")
	case err != nil:
		s.handleDomainError(w, err)
	default:
		writeContent(w, content)
	}
}

// generateBlogTitles handles POST /api/ai/generate-blog-titles.
func (s *Server) generateBlogTitles(w http.ResponseWriter, r *http.Request) {
	id, ok := s.caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Topic string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusOK, "Topic is required")
		return
	}

	content, err := s.generator.BlogTitles(r.Context(), id.UserID, req.Topic)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, http.StatusOK, "Topic is required")
	case err != nil:
		s.handleDomainError(w, err)
	default:
		writeContent(w, content)
	}
}

// generateExamQuestions handles POST /api/ai/generate-exam-questions.
func (s *Server) generateExamQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := s.caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Topic      string `json:"topic"`
		LongCount  int    `json:"longCount"`
		ShortCount int    `json:"sortCount"`
		MCQCount   int    `json:"mcqCount"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusOK, "Topic is required")
		return
	}

	set, err := s.generator.ExamQuestions(r.Context(), id.UserID, generateuc.ExamSpec{
		Topic:      req.Topic,
		LongCount:  req.LongCount,
		ShortCount: req.ShortCount,
		MCQCount:   req.MCQCount,
		Difficulty: req.Difficulty,
	})
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, http.StatusOK, "Topic is required")
	case err != nil:
		s.handleDomainError(w, err)
	default:
		writeJSON(w, http.StatusOK, struct {
			Success bool               `json:"success"`
			Content generateuc.ExamSet `json:"content"`
			LQ      string             `json:"lq"`
			SQ      string             `json:"sq"`
		}{true, set, string(set.LongExplainer), string(set.ShortExplainer)})
	}
}

// reviewResume handles POST /api/ai/review-resume.
func (s *Server) reviewResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.caller(w, r)
	if !ok {
		return
	}

	path, cleanup, err := s.stageUpload(r, "resume")
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeFailure(w, http.StatusOK, "Resume file is required")
			return
		}
		s.handleDomainError(w, err)
		return
	}
	defer cleanup()

	text, err := extract.PDFText(path)
	if err != nil {
		writeFailure(w, http.StatusOK, "Invalid PDF file")
		return
	}

	content, err := s.generator.ResumeReview(r.Context(), id.UserID, text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeContent(w, content)
}

type creationJSON struct {
	ID        int64     `json:"id"`
	Prompt    string    `json:"prompt"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// listCreations handles GET /api/ai/creations.
func (s *Server) listCreations(w http.ResponseWriter, r *http.Request) {
	id, ok := s.caller(w, r)
	if !ok {
		return
	}

	rows, err := s.generator.Recent(r.Context(), id.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]creationJSON, len(rows))
	for i, c := range rows {
		items[i] = creationJSON{
			ID:        c.ID,
			Prompt:    c.Prompt,
			Content:   c.Content,
			Type:      string(c.Type),
			CreatedAt: c.CreatedAt,
		}
	}
	writeContent(w, items)
}
