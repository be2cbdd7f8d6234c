package chi

import (
	"context"
	"net/http"
	"strings"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type privilegedKey struct{}

// WithPrivileged marks the caller in ctx as privileged.
func WithPrivileged(ctx context.Context, privileged bool) context.Context {
	return context.WithValue(ctx, privilegedKey{}, privileged)
}

// Privileged reports whether the caller in ctx authenticated with a valid key.
func Privileged(ctx context.Context) bool {
	p, _ := ctx.Value(privilegedKey{}).(bool)
	return p
}

// BearerAuthMiddleware resolves the caller's privilege from a Bearer token.
// No Authorization header means a public caller; a valid key means a
// privileged one; anything else is rejected with 401.
// If apiKeys is empty, every caller is public and headers are ignored.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					ErrorCodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			token := auth[len(bearerPrefix):]
			if _, ok := validKeys[token]; !ok {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrivileged(r.Context(), true)))
		})
	}
}
