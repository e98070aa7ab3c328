package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/woningspotters/woningspotters-api/internal/config"
	"github.com/woningspotters/woningspotters-api/internal/dto"
	"github.com/woningspotters/woningspotters-api/internal/session"
)

func jwtConfig(cfg *config.Config) jwtware.Config {
	conf := jwtware.Config{ContextKey: session.ContextKey}
	if cfg.JWKSURL != "" {
		conf.JWKSetURLs = []string{cfg.JWKSURL}
	} else {
		conf.SigningKey = jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)}
	}
	return conf
}

// JWTProtected rejects requests without a valid Supabase session token.
func JWTProtected(cfg *config.Config) fiber.Handler {
	conf := jwtConfig(cfg)
	conf.ErrorHandler = func(c *fiber.Ctx, err error) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Not authenticated",
		})
	}
	return jwtware.New(conf)
}

// OptionalJWT verifies a session token when one is sent. Requests without
// a token, or with one that fails verification, continue anonymously.
func OptionalJWT(cfg *config.Config) fiber.Handler {
	conf := jwtConfig(cfg)
	conf.Filter = func(c *fiber.Ctx) bool {
		return c.Get(fiber.HeaderAuthorization) == ""
	}
	conf.ErrorHandler = func(c *fiber.Ctx, err error) error {
		c.Locals(session.ContextKey, nil)
		return c.Next()
	}
	return jwtware.New(conf)
}
