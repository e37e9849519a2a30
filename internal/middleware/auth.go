// Package middleware provides HTTP middleware for authentication, rate
// limiting and request identification.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"docsight/internal/domain"
)

// JWTAuth validates an HS256 Bearer token and stores the caller identity
// in the request context. Tokens without an email claim are rejected:
// every access decision downstream is keyed on the email.
func JWTAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeUnauthorized(w, "missing Bearer token")
				return
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				writeUnauthorized(w, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeUnauthorized(w, "invalid token")
				return
			}
			email, _ := claims["email"].(string)
			if email == "" {
				writeUnauthorized(w, "token has no email claim")
				return
			}

			ctx := domain.WithIdentity(r.Context(), domain.Identity{Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SecretAuth guards an endpoint with a shared secret carried in the
// X-API-Secret header. An empty configured secret disables the check,
// which is only acceptable in local development; config warns about it.
func SecretAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" {
				got := r.Header.Get("X-API-Secret")
				if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
					writeUnauthorized(w, "invalid or missing X-API-Secret")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": "unauthorized: " + msg,
	})
}
