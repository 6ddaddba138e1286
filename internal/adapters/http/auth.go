package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sayahatkz/sayahat/internal/core/domain"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates an account and returns it with a signed token.
func RegisterHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		user, err := deps.Auth.Register(c.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			if errors.Is(err, domain.ErrEmailTaken) {
				return errConflict(c, "email already registered")
			}
			return errBadRequest(c, err.Error())
		}

		token, err := IssueToken(deps.JWTSecret, deps.TokenTTL, user.ID)
		if err != nil {
			return errInternal(c, "token issue failed")
		}

		return c.Status(201).JSON(fiber.Map{"user": user, "token": token})
	}
}

// LoginHandler verifies credentials and returns the user with a token.
func LoginHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		user, err := deps.Auth.Login(c.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				return errUnauthorized(c, "invalid email or password")
			}
			return errInternal(c, err.Error())
		}

		token, err := IssueToken(deps.JWTSecret, deps.TokenTTL, user.ID)
		if err != nil {
			return errInternal(c, "token issue failed")
		}

		return c.JSON(fiber.Map{"user": user, "token": token})
	}
}
