// Package session reads the verified caller identity that the JWT
// middleware stores in the fiber context.
package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ContextKey is where the JWT middleware stores the parsed token.
const ContextKey = "user"

var ErrNoSession = errors.New("no session in context")

func claims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil || !token.Valid {
		return nil, false
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	return mc, ok
}

// UserID returns the subject of the session token.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	mc, ok := claims(c)
	if !ok {
		return uuid.Nil, ErrNoSession
	}
	sub, ok := mc["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// OptionalUserID is UserID for routes that also serve anonymous callers.
func OptionalUserID(c *fiber.Ctx) *uuid.UUID {
	id, err := UserID(c)
	if err != nil {
		return nil
	}
	return &id
}

func Email(c *fiber.Ctx) string {
	mc, ok := claims(c)
	if !ok {
		return ""
	}
	email, _ := mc["email"].(string)
	return email
}
