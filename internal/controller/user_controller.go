package controller

import (
	"errors"

	"realtime-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	GetUsers(ctx *fiber.Ctx) error
	GetUser(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/users")
	h.Use(authMiddleware)
	h.Get("/", c.GetUsers)
	h.Get("/:id", c.GetUser)
}

func (c *userController) GetUsers(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.GetUsers(ctx.Context(), userID)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    fiber.StatusOK,
		"data":    res,
	})
}

func (c *userController) GetUser(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	res, err := c.service.GetUser(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    fiber.StatusOK,
		"data":    res,
	})
}
