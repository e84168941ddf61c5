package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/avolkov/microblog/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// authenticate extracts and verifies a bearer token from the Authorization
// header. A valid token attaches the claims to the request context; a
// missing or invalid one leaves the request unauthenticated. It never
// rejects by itself — route policy does that via requireAuth.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			if claims, err := s.tokens.Parse(strings.TrimSpace(token)); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects requests that carry no authenticated identity.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claimsFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// securityHeaders adds the baseline response headers applied to every route.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
