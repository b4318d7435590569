package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// currentUserID reads the identity stored by the JWT middleware.
func currentUserID(ctx *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := ctx.Locals("user_id").(uuid.UUID)
	return userID, ok
}
