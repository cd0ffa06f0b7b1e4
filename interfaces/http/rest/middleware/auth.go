package middleware

import (
	"errors"
	"net/http"
	"strings"

	"fintrack-backend/pkg/auth"
	"fintrack-backend/pkg/common"

	"go.uber.org/zap"
)

// Authenticate validates the bearer token against the identity provider's
// JWKS and attaches the caller to the request context. A nil verifier means
// the provider is not configured; every protected route then answers 503.
func Authenticate(verifier *auth.Verifier, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				common.RespondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "authentication service not configured")
				return
			}

			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "missing authorization header")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("token rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				switch {
				case errors.Is(err, auth.ErrExpiredToken):
					respondUnauthorized(w, "token has expired")
				case errors.Is(err, auth.ErrInvalidSignature):
					respondUnauthorized(w, "invalid token signature")
				case errors.Is(err, auth.ErrWrongClient):
					respondUnauthorized(w, "token was not issued for this client")
				default:
					respondUnauthorized(w, "invalid token")
				}
				return
			}

			userCtx := &auth.UserContext{
				UserID:   claims.UserID,
				Email:    claims.Email,
				Name:     claims.Name,
				Username: claims.Username,
			}
			next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), userCtx)))
		})
	}
}

// extractToken pulls the bearer token from the Authorization header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return authHeader
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// BearerToken returns the raw token for handlers that need to pass it on to
// the identity provider (e.g. the current-user lookup).
func BearerToken(r *http.Request) string {
	return extractToken(r)
}
