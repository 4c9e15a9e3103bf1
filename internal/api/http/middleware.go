package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"collectrent/internal/config"
	"collectrent/internal/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

type contextKey string

const callerKey contextKey = "caller-id"

// callerID returns the account the auth middleware verified. Handlers
// behind SecurityAccess always see a non-nil id.
func callerID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(callerKey).(uuid.UUID)
	return id
}

// AuthMiddleware authenticates requests according to the security level
// registered for the matched route's name.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (m *AuthMiddleware) Handler() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			level := config.GetSecurityLevel(routeName(r))

			// Public endpoint - skip auth
			if level == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}

			token, err := extractToken(r)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}

			claims, err := m.tokenManager.ValidateToken(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
				return
			}
			if claims.AccountID == uuid.Nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "token carries no account"})
				return
			}

			// Inject the verified account id into the context. Anything
			// the client supplied under that key is overwritten.
			ctx := context.WithValue(r.Context(), callerKey, claims.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		return route.GetName()
	}
	return ""
}

func extractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("authorization token is not provided")
	}

	// Remove Bearer prefix if present
	if len(header) > 7 && strings.ToUpper(header[0:7]) == "BEARER " {
		return header[7:], nil
	}
	return header, nil
}

// rateLimit rejects requests over the configured rate before they reach
// the engine. The limiter is shared across all clients.
func rateLimit(limiter *rate.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
