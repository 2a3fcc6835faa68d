package contextstore

import (
	"context"
	"testing"
	"time"

	"github.com/claro-labs/claro/internal/domain"
)

func TestMemory_GetBeforePut(t *testing.T) {
	m := NewMemory(0)

	_, ok, err := m.Get(context.Background(), "u1", domain.ContextDocument)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected miss before any put")
	}
}

func TestMemory_LastWriteWins(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	_ = m.Put(ctx, "u1", domain.ContextDocument, "A")
	_ = m.Put(ctx, "u1", domain.ContextDocument, "B")

	text, ok, _ := m.Get(ctx, "u1", domain.ContextDocument)
	if !ok || text != "B" {
		t.Fatalf("expected latest value B, got %q (ok=%v)", text, ok)
	}
}

func TestMemory_DomainsAreIndependent(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	_ = m.Put(ctx, "u1", domain.ContextDocument, "doc text")

	if _, ok, _ := m.Get(ctx, "u1", domain.ContextVideo); ok {
		t.Error("video domain should be empty after a document put")
	}
	if _, ok, _ := m.Get(ctx, "u2", domain.ContextDocument); ok {
		t.Error("other users should not see the entry")
	}
}

func TestMemory_TTLEviction(t *testing.T) {
	m := NewMemory(time.Minute)
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	_ = m.Put(ctx, "u1", domain.ContextVideo, "meta")

	if _, ok, _ := m.Get(ctx, "u1", domain.ContextVideo); !ok {
		t.Fatal("entry should be readable before the TTL elapses")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := m.Get(ctx, "u1", domain.ContextVideo); ok {
		t.Fatal("entry should be evicted after the TTL elapses")
	}
}
