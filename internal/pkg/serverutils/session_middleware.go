package serverutils

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// SessionValidator resolves a bearer token to the username owning it.
type SessionValidator interface {
	ValidateSession(ctx context.Context, authToken string) (string, error)
}

// SessionMiddleware authenticates requests with "Authorization: Bearer <token>"
// and stores the resolved username in ctx.Locals("username").
func SessionMiddleware(sessions SessionValidator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "missing token"))
		}
		token := authHeader[7:]

		username, err := sessions.ValidateSession(ctx.Context(), token)
		if err != nil {
			return err
		}

		ctx.Locals("username", username)
		return ctx.Next()
	}
}
