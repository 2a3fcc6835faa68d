// Package chi exposes the AI features over HTTP with the envelope the
// frontend consumes: {success, content|answer, message}.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/claro-labs/claro/internal/domain"
	chatuc "github.com/claro-labs/claro/internal/usecase/chat"
	generateuc "github.com/claro-labs/claro/internal/usecase/generate"
	healthuc "github.com/claro-labs/claro/internal/usecase/health"
	summarizeuc "github.com/claro-labs/claro/internal/usecase/summarize"
)

const (
	msgUnauthorized    = "Unauthorized"
	msgPremiumOnly     = "This feature is only available for premium subscriptions"
	msgServerError     = "Server error"
	msgParseFailed     = "Failed to parse AI response"
	msgVideoNotFound   = "Video not found"
	msgInvalidRequest  = "Invalid request"
	msgUnreadablePDF   = "Could not read PDF text. Try another file."
	msgNoDocumentCtx   = "Please summarize a PDF first."
	msgNoVideoCtx      = "Please summarize a video first."
	msgAskQuestion     = "Please ask a question"
	msgMissingVideoRef = "Missing URL/videoId"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers for the AI endpoints.
type Server struct {
	summaries     *summarizeuc.Service
	chats         *chatuc.Service
	generator     *generateuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	uploads       UploadConfig
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	summaries *summarizeuc.Service,
	chats *chatuc.Service,
	generator *generateuc.Service,
	health *healthuc.Service,
	uploads UploadConfig,
	logger *zap.Logger,
) *Server {
	s := &Server{
		summaries: summaries,
		chats:     chats,
		generator: generator,
		health:    health,
		uploads:   uploads,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		statusHandler(domain.ErrUnauthorized, http.StatusUnauthorized, msgUnauthorized),
		failureHandler(domain.ErrPremiumRequired, msgPremiumOnly),
		failureHandler(domain.ErrParse, msgParseFailed),
		failureHandler(domain.ErrNotFound, msgVideoNotFound),
		failureHandler(domain.ErrValidation, msgInvalidRequest),
	}
	return s
}

// Routes mounts all endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/ai", func(r chi.Router) {
		r.Post("/summarize-document", s.summarizeDocument)
		r.Post("/document-chat", s.documentChat)
		r.Post("/summarize-video", s.summarizeVideo)
		r.Post("/video-chat", s.videoChat)
		r.Post("/generate-article", s.generateArticle)
		r.Post("/generate-blog-titles", s.generateBlogTitles)
		r.Post("/generate-exam-questions", s.generateExamQuestions)
		r.Post("/review-resume", s.reviewResume)
		r.Get("/creations", s.listCreations)
	})
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metrics)
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// metrics handles GET /metrics.
func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// envelope is the response shape every AI endpoint returns.
type envelope struct {
	Success bool   `json:"success"`
	Content any    `json:"content,omitempty"`
	Answer  string `json:"answer,omitempty"`
	Used    string `json:"used,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeContent(w http.ResponseWriter, content any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Content: content})
}

func writeAnswer(w http.ResponseWriter, answer string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Answer: answer})
}

// writeFailure reports an expected domain failure. These keep HTTP 200 so
// the frontend reads the envelope rather than an error page.
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// failureHandler matches a sentinel and reports it as an expected failure.
func failureHandler(sentinel error, message string) errorHandler {
	return statusHandler(sentinel, http.StatusOK, message)
}

func statusHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeFailure(w, status, message)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeFailure(w, http.StatusInternalServerError, msgServerError)
}
