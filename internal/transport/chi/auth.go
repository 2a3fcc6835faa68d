package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/claro-labs/claro/internal/auth"
	"github.com/claro-labs/claro/internal/domain"
)

type ctxKey int

const identityKey ctxKey = iota

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// IdentityMiddleware resolves the Bearer token into a caller identity and
// stores it in the request context. Requests without a verifiable
// identity are rejected with 401.
func IdentityMiddleware(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(header, bearerPrefix) {
				writeFailure(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			id, err := verifier.Verify(r.Context(), header[len(bearerPrefix):])
			if err != nil {
				writeFailure(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFrom returns the caller identity placed by IdentityMiddleware.
func identityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}
