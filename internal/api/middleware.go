package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"reliefhub-backend/internal/auth"
	"reliefhub-backend/internal/models"
	"reliefhub-backend/pkg/httputil"
)

// resolveActor parses the bearer token, if any, into a fully-resolved
// actor. Returns (nil, nil) when no Authorization header is present, and
// an error for a present-but-invalid token; it never invents a default
// identity from partial data.
func resolveActor(r *http.Request, jwtSecret string) (*models.ChatUser, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errors.New("malformed Authorization header (Expected: Bearer <token>)")
	}

	claims, err := auth.ValidateToken(parts[1], jwtSecret)
	if err != nil {
		return nil, err
	}

	actor := claims.Actor()
	return &actor, nil
}

// JwtAuthMiddleware requires a valid bearer token. The fully-resolved
// actor is injected into the request context for downstream handlers.
func JwtAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := resolveActor(r, jwtSecret)
			if err != nil {
				log.Printf("Auth Middleware: %v", err)
				if errors.Is(err, jwt.ErrTokenExpired) {
					httputil.RespondError(w, http.StatusUnauthorized, "Token has expired")
				} else {
					httputil.RespondError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}
			if actor == nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

// OptionalJwtAuthMiddleware resolves an actor when a valid token is
// present and continues anonymously otherwise. Routes behind it decide
// for themselves whether anonymous access is acceptable; an invalid token
// degrades to anonymous rather than failing the request, matching the
// public site's behavior for expired sessions.
func OptionalJwtAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := resolveActor(r, jwtSecret)
			if err != nil {
				log.Printf("Auth Middleware (optional): continuing anonymously: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if actor == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

// RequireAdmin gates a route on an admin actor. Must run after one of the
// JWT middlewares.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := auth.ActorFromContext(r.Context())
		if !ok {
			httputil.RespondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if actor.Role != models.RoleAdmin {
			httputil.RespondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
