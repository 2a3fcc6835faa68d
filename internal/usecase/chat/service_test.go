package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/claro-labs/claro/internal/domain"
	"github.com/claro-labs/claro/internal/repository/contextstore"
)

// --- Mocks ---

type mockCompleter struct {
	prompts []string
	reply   string
	err     error
}

func (m *mockCompleter) Complete(_ context.Context, prompt string, _ int, _ float32) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

type mockCreationLog struct {
	appended []domain.Creation
	err      error
}

func (m *mockCreationLog) Append(_ context.Context, c domain.Creation) error {
	m.appended = append(m.appended, c)
	return m.err
}

func newTestService(store ContextReader, mc *mockCompleter, log *mockCreationLog) *Service {
	if log == nil {
		log = &mockCreationLog{}
	}
	return New(store, mc, log, zap.NewNop())
}

// --- Tests ---

func TestAsk_NoContextBeforeAnyPut(t *testing.T) {
	mc := &mockCompleter{reply: "should not be used"}
	svc := newTestService(contextstore.NewMemory(0), mc, nil)

	_, err := svc.Ask(context.Background(), "u1", domain.ContextDocument, "what is this about?")
	if !errors.Is(err, domain.ErrNoContext) {
		t.Fatalf("expected ErrNoContext, got %v", err)
	}
	if len(mc.prompts) != 0 {
		t.Error("completion backend must not be invoked without stored context")
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	store := contextstore.NewMemory(0)
	_ = store.Put(context.Background(), "u1", domain.ContextDocument, "text")
	mc := &mockCompleter{}
	svc := newTestService(store, mc, nil)

	_, err := svc.Ask(context.Background(), "u1", domain.ContextDocument, "   \n ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(mc.prompts) != 0 {
		t.Error("completion backend must not be invoked for an empty question")
	}
}

func TestAsk_GroundsPromptInStoredContext(t *testing.T) {
	store := contextstore.NewMemory(0)
	_ = store.Put(context.Background(), "u1", domain.ContextDocument, "chapter one: turtles")
	mc := &mockCompleter{reply: "it is about turtles"}
	svc := newTestService(store, mc, nil)

	answer, err := svc.Ask(context.Background(), "u1", domain.ContextDocument, "what is it about?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "it is about turtles" {
		t.Errorf("unexpected answer %q", answer)
	}
	if len(mc.prompts) != 1 {
		t.Fatalf("expected exactly one completion call, got %d", len(mc.prompts))
	}
	if !strings.Contains(mc.prompts[0], "chapter one: turtles") {
		t.Error("prompt should carry the stored context")
	}
	if !strings.Contains(mc.prompts[0], "what is it about?") {
		t.Error("prompt should carry the question")
	}
}

func TestAsk_VideoDomainUsesMetadataPrompt(t *testing.T) {
	store := contextstore.NewMemory(0)
	_ = store.Put(context.Background(), "u1", domain.ContextVideo, "Video Title: demo")
	mc := &mockCompleter{reply: "answer"}
	log := &mockCreationLog{}
	svc := newTestService(store, mc, log)

	if _, err := svc.Ask(context.Background(), "u1", domain.ContextVideo, "who made it?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mc.prompts[0], "YouTube metadata") {
		t.Error("video questions should use the metadata prompt")
	}
	if len(log.appended) != 1 || log.appended[0].Type != domain.CreationVideoChat {
		t.Errorf("expected one youtube-chat creation, got %+v", log.appended)
	}
}

func TestAsk_DocumentChatIsNotLogged(t *testing.T) {
	store := contextstore.NewMemory(0)
	_ = store.Put(context.Background(), "u1", domain.ContextDocument, "text")
	log := &mockCreationLog{}
	svc := newTestService(store, &mockCompleter{reply: "a"}, log)

	if _, err := svc.Ask(context.Background(), "u1", domain.ContextDocument, "q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(log.appended) != 0 {
		t.Errorf("document chats should not land in the creation log, got %+v", log.appended)
	}
}

func TestAsk_CreationFailureIsSwallowed(t *testing.T) {
	store := contextstore.NewMemory(0)
	_ = store.Put(context.Background(), "u1", domain.ContextVideo, "meta")
	log := &mockCreationLog{err: errors.New("db down")}
	svc := newTestService(store, &mockCompleter{reply: "fine"}, log)

	answer, err := svc.Ask(context.Background(), "u1", domain.ContextVideo, "q")
	if err != nil {
		t.Fatalf("a broken creation log must not fail the request: %v", err)
	}
	if answer != "fine" {
		t.Errorf("unexpected answer %q", answer)
	}
}

func TestAsk_EmptyCompletionFallsBack(t *testing.T) {
	store := contextstore.NewMemory(0)
	_ = store.Put(context.Background(), "u1", domain.ContextVideo, "meta")
	svc := newTestService(store, &mockCompleter{reply: ""}, nil)

	answer, err := svc.Ask(context.Background(), "u1", domain.ContextVideo, "anything?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "No answer found" {
		t.Errorf("expected fallback answer, got %q", answer)
	}
}

func TestAsk_CompletionErrorPropagates(t *testing.T) {
	store := contextstore.NewMemory(0)
	_ = store.Put(context.Background(), "u1", domain.ContextDocument, "text")
	svc := newTestService(store, &mockCompleter{err: domain.ErrTimeout}, nil)

	_, err := svc.Ask(context.Background(), "u1", domain.ContextDocument, "q")
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("expected ErrTimeout to propagate, got %v", err)
	}
}
