package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/claro-labs/claro/internal/domain"
)

// JWT verifies HMAC-signed tokens issued by the identity provider. The
// subject claim carries the user id and the custom "plan" claim carries
// the entitlement tier.
type JWT struct {
	secret []byte
}

// NewJWT creates a verifier for tokens signed with secret.
func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret)}
}

// Verify implements Verifier. Any parse, signature, or expiry failure
// maps to domain.ErrUnauthorized.
func (j *JWT) Verify(_ context.Context, token string) (domain.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse token: %v: %w", err, domain.ErrUnauthorized)
	}
	if !parsed.Valid {
		return domain.Identity{}, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Identity{}, fmt.Errorf("token has no subject: %w", domain.ErrUnauthorized)
	}

	plan := domain.PlanFree
	if p, ok := claims["plan"].(string); ok && domain.Plan(p) == domain.PlanPremium {
		plan = domain.PlanPremium
	}

	return domain.Identity{UserID: sub, Plan: plan}, nil
}
