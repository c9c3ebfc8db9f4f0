package common

import (
	"net/http"
	"strings"
)

// AuthMiddleware enforces a Bearer token and injects the resulting
// Principal into the request context. Handlers behind it read the
// identity with PrincipalFrom and never touch the token themselves.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			WriteError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		// header = Bearer <token>
		parts := strings.Fields(header)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			WriteError(w, http.StatusUnauthorized, "invalid auth header")
			return
		}

		claims, err := ValidToken(parts[1])
		if err != nil {
			WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		principal := Principal{
			UserID: claims.UserID,
			Handle: claims.Handle,
			Role:   Role(claims.Role),
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// AdminMiddleware gates moderation endpoints. It runs behind
// AuthMiddleware, so a missing principal is a misconfigured route.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFrom(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "user not authenticated")
			return
		}
		if !principal.IsAdmin() {
			WriteError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
