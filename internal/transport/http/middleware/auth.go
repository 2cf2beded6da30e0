package middleware

import (
	"context"
	"net/http"
	"strings"

	"appraisal/internal/domain/auth"
)

// Auth resolves a bearer token into the caller identity. Requests
// without a valid token pass through unauthenticated; handlers decide
// whether an identity is required.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyIdentity, auth.Identity{
				Role:       claims.Role,
				Name:       claims.Name,
				EmployeeID: claims.EmployeeID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity).(auth.Identity)
	return identity, ok
}
