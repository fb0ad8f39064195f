package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"
)

type contextKey string

const claimsContextKey contextKey = "claims"

var errMissingAuthorization = errors.New("missing authorization")

// Middleware rejects requests without a valid session token and stores the
// validated claims in the request context. An empty secret rejects everything.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := BearerToken(r)
			if err != nil {
				unauthorized(w)
				return
			}

			claims, err := Validate(tokenString, secret)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("rejected session token")
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// BearerToken extracts the token from the Authorization header. The "Bearer "
// prefix is optional and matched case-insensitively.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errMissingAuthorization
	}

	token := header
	if len(header) >= len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		token = header[len("Bearer "):]
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingAuthorization
	}
	return token, nil
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the authenticated principal, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
