package serverutils

import (
	"realtime-chat-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// NewJwtMiddleware guards REST routes. The verified identity is stored in
// ctx.Locals("user_id") as a uuid.UUID.
func NewJwtMiddleware(tm *token.Manager) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}

		userID, err := tm.Verify(authHeader[7:])
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		ctx.Locals("user_id", userID)
		return ctx.Next()
	}
}
