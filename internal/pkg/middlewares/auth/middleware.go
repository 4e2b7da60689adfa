package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"moveit/internal/entities"
	"moveit/pkg/logger"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Middleware пускает дальше только запросы с валидным HS256 токеном и кладет
// участника в контекст.
func Middleware(log handlerLogger, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := Authenticate(r.Header.Get("Authorization"), secret)
			if err != nil {
				log.Warn("unauthorized request",
					logger.NewField("method", r.Method),
					logger.NewField("path", r.URL.Path),
					logger.NewField("error", err),
				)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// Authenticate разбирает значение заголовка Authorization.
func Authenticate(header string, secret []byte) (entities.Actor, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return entities.Actor{}, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		strings.TrimSpace(header[len(bearerPrefix):]),
		claims,
		func(_ *jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return entities.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	role := entities.Role(claims.Role)
	if claims.UserID == "" || !role.IsValid() {
		return entities.Actor{}, fmt.Errorf("%w: missing user or role", ErrInvalidToken)
	}

	return entities.Actor{
		ID:   claims.UserID,
		Name: claims.Name,
		Role: role,
	}, nil
}

// IssueToken подписывает токен участника, им пользуются тесты и генератор нагрузки.
func IssueToken(secret []byte, actor entities.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: actor.ID,
		Name:   actor.Name,
		Role:   actor.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
