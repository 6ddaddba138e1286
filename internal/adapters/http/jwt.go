package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userIDLocal = "user_id"

// IssueToken signs an HS256 token for the given user.
func IssueToken(secret string, ttl time.Duration, userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString([]byte(secret))
}

// parseBearer validates an Authorization header and returns the subject.
// Returns "" on any failure.
func parseBearer(secret, header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// RequireAuth rejects requests without a valid bearer token and stores
// the authenticated user ID in c.Locals("user_id").
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := parseBearer(secret, c.Get(fiber.HeaderAuthorization))
		if userID == "" {
			return errUnauthorized(c, "missing or invalid token")
		}
		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// OptionalAuth extracts the user ID when a valid token is present but
// lets anonymous requests through. Read endpoints use this so that
// unauthenticated clients get empty collections instead of a 401.
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID := parseBearer(secret, c.Get(fiber.HeaderAuthorization)); userID != "" {
			c.Locals(userIDLocal, userID)
		}
		return c.Next()
	}
}

// currentUser returns the authenticated user ID, or "" for anonymous.
func currentUser(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDLocal).(string)
	return id
}
