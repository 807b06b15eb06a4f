package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/pollboard/pollboard-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (int64, string, error)
}

// AdminAuth marks the request context as admin when the caller presents
// either the shared X-Api-Secret (scheduler/cron callers) or a bearer JWT
// with the admin role (admin console). Requests without credentials pass
// through anonymously; handlers enforce RequireAdmin themselves.
func AdminAuth(apiSecret string, validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret := r.Header.Get("X-Api-Secret"); secret != "" {
				if subtle.ConstantTimeCompare([]byte(secret), []byte(apiSecret)) != 1 {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r.WithContext(ctxutil.WithAdmin(r.Context())))
				return
			}

			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}

			_, role, err := validator.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := r.Context()
			if role == "admin" {
				ctx = ctxutil.WithAdmin(ctx)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
