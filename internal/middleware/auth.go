// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"harbor/internal/config"
	"harbor/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Session tokens carry these issuer/audience claims and are rejected when
// either is missing or different.
const (
	TokenIssuer   = "harbor"
	TokenAudience = "harbor"
)

var (
	cfg *config.Config
	// isRevoked reports whether a token's jti has been revoked by logout.
	// Nil means revocation checks are disabled (no Redis).
	isRevoked func(ctx context.Context, jti string) bool
)

// InitMiddleware initializes authentication middleware with the given config
// and an optional session revocation check.
func InitMiddleware(c *config.Config, revoked func(ctx context.Context, jti string) bool) {
	cfg = c
	isRevoked = revoked
}

// SessionClaims are the values extracted from a validated session token.
type SessionClaims struct {
	UserID    uint
	JTI       string
	ExpiresAt time.Time
}

// ParseSessionToken validates a signed session token string and returns its claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthenticatedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthenticatedError("Invalid token claims")
	}

	// User ID travels in the "sub" claim (subject claim per RFC 7519)
	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, models.NewUnauthenticatedError("Invalid token structure - missing subject")
	}
	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return nil, models.NewUnauthenticatedError("Invalid user ID in token")
	}

	sc := &SessionClaims{UserID: uint(userIDVal)}
	if jti, ok := claims["jti"].(string); ok {
		sc.JTI = jti
	}
	if exp, ok := claims["exp"].(float64); ok {
		sc.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return sc, nil
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("Authorization header required"))
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("Invalid authorization header format"))
	}

	claims, err := ParseSessionToken(parts[1])
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if claims.JTI != "" && isRevoked != nil && isRevoked(c.UserContext(), claims.JTI) {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("Session has been revoked"))
	}

	c.Locals("userID", claims.UserID)
	c.Locals("sessionJTI", claims.JTI)
	c.Locals("sessionExp", claims.ExpiresAt)

	return c.Next()
}

// WebSocketAuthRequired validates session tokens from the `token` query
// parameter, falling back to the Authorization header. Browsers cannot set
// headers on WebSocket upgrade requests.
func WebSocketAuthRequired(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("Token required"))
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("Invalid authorization header format"))
		}
		token = parts[1]
	}

	claims, err := ParseSessionToken(token)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if claims.JTI != "" && isRevoked != nil && isRevoked(c.UserContext(), claims.JTI) {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("Session has been revoked"))
	}

	c.Locals("userID", claims.UserID)

	return c.Next()
}
