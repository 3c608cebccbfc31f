package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Mayen007/qrgen/auth"

	"github.com/rs/zerolog/log"
)

// UserAuth is a middleware that validates user JWT tokens
type UserAuth struct {
	jwtManager *auth.JWTManager
}

// NewUserAuth creates a new user authentication middleware
func NewUserAuth(jwtManager *auth.JWTManager) *UserAuth {
	return &UserAuth{jwtManager: jwtManager}
}

// Protect returns a middleware function that requires authentication
func (ua *UserAuth) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Missing authorization token")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(w, "Invalid authorization header format. Use: Bearer <token>")
			return
		}

		claims, err := ua.jwtManager.ValidateToken(parts[1])
		if err != nil {
			log.Warn().Err(err).Msg("Invalid token")
			unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		ctx = context.WithValue(ctx, "userEmail", claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// GetUserID extracts user ID from request context
func GetUserID(r *http.Request) string {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		return ""
	}
	return userID
}
