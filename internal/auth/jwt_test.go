package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/claro-labs/claro/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestVerify_PremiumIdentity(t *testing.T) {
	v := NewJWT(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-42", "plan": "premium"})

	id, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.UserID != "user-42" {
		t.Errorf("unexpected user id %q", id.UserID)
	}
	if !id.IsPremium() {
		t.Error("expected a premium identity")
	}
}

func TestVerify_DefaultsToFreePlan(t *testing.T) {
	v := NewJWT(testSecret)

	for _, claims := range []jwt.MapClaims{
		{"sub": "u1"},
		{"sub": "u1", "plan": "basic"},
		{"sub": "u1", "plan": 7},
	} {
		id, err := v.Verify(context.Background(), signToken(t, testSecret, claims))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id.Plan != domain.PlanFree {
			t.Errorf("claims %v: expected free plan, got %q", claims, id.Plan)
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	v := NewJWT(testSecret)
	token := signToken(t, "other-secret", jwt.MapClaims{"sub": "u1"})

	_, err := v.Verify(context.Background(), token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	v := NewJWT(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{"plan": "premium"})

	_, err := v.Verify(context.Background(), token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	v := NewJWT(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	v := NewJWT(testSecret)

	_, err := v.Verify(context.Background(), "not-a-token")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
