package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/claro-labs/claro/internal/domain"
)

// ExamSpec describes the requested exam question mix.
type ExamSpec struct {
	Topic      string
	LongCount  int
	ShortCount int
	MCQCount   int
	Difficulty string
}

// ExamQuestion is one long or short question.
type ExamQuestion struct {
	ID int    `json:"id"`
	Q  string `json:"q"`
}

// ExamMCQ is one multiple-choice question.
type ExamMCQ struct {
	ID      int      `json:"id"`
	Q       string   `json:"q"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// ExamSet is the parsed question set. The wire key for short questions is
// "sort", which existing clients depend on.
type ExamSet struct {
	Long  []ExamQuestion `json:"long"`
	Short []ExamQuestion `json:"sort"`
	MCQ   []ExamMCQ      `json:"mcq"`
	// Model explanations; sometimes returned as an object keyed by
	// question id instead of a plain string.
	LongExplainer  flexText `json:"LQ_version"`
	ShortExplainer flexText `json:"SQ_version"`
}

// flexText accepts either a JSON string or an object whose values are
// joined into one string.
type flexText string

func (f *flexText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexText(s)
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, m[k])
	}
	*f = flexText(strings.Join(parts, "\n\n"))
	return nil
}

// ExamQuestions generates a question set for spec and parses the model's
// JSON reply. Any text around the JSON object is tolerated; the slice
// between the first "{" and the last "}" is what gets parsed.
func (s *Service) ExamQuestions(ctx context.Context, userID string, spec ExamSpec) (ExamSet, error) {
	if strings.TrimSpace(spec.Topic) == "" {
		return ExamSet{}, fmt.Errorf("topic is required: %w", domain.ErrValidation)
	}

	raw, err := s.completer.Complete(ctx, examPrompt(spec), 0, 0)
	if err != nil {
		return ExamSet{}, fmt.Errorf("generate exam questions: %w", err)
	}
	if raw == "" {
		return ExamSet{}, fmt.Errorf("empty model reply: %w", domain.ErrParse)
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return ExamSet{}, fmt.Errorf("no JSON object in model reply: %w", domain.ErrParse)
	}

	var set ExamSet
	if err := json.Unmarshal([]byte(raw[start:end+1]), &set); err != nil {
		return ExamSet{}, fmt.Errorf("decode exam set: %v: %w", err, domain.ErrParse)
	}

	s.appendCreation(ctx, domain.Creation{
		UserID:  userID,
		Prompt:  spec.Topic,
		Content: raw[start : end+1],
		Type:    domain.CreationExam,
	})
	return set, nil
}

func examPrompt(spec ExamSpec) string {
	return fmt.Sprintf(`Generate exam questions for topic %q.
Difficulty: %s

Long Questions: %d
Short Questions: %d
MCQs: %d

Return ONLY JSON in this format:
{
  "long": [{ "id": 1, "q": "..." }],
  "sort": [{ "id": 1, "q": "..." }],
  "mcq": [
    {
      "id": 1,
      "q": "...",
      "options": ["A","B","C","D"],
      "answer": "A"
    }
  ],
  "LQ_version": "Long questions explanation here...",
  "SQ_version": "Short questions explanation here..."
}
`, spec.Topic, spec.Difficulty, spec.LongCount, spec.ShortCount, spec.MCQCount)
}
