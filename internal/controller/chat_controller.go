package controller

import (
	"errors"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	CreateChat(ctx *fiber.Ctx) error
	GetChats(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/chats")
	h.Use(authMiddleware)
	h.Post("/", c.CreateChat)
	h.Get("/", c.GetChats)
	h.Post("/messages", c.SendMessage)
	h.Patch("/messages/:id/read", c.MarkRead)
	h.Get("/:id/messages", c.GetMessages)
}

func (c *chatController) CreateChat(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.CreateChat(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    fiber.StatusCreated,
		"data":    res,
	})
}

func (c *chatController) GetChats(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.GetChats(ctx.Context(), userID)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    fiber.StatusOK,
		"data":    res,
	})
}

// SendMessage is the REST origin of the Message Router send path. It shares
// the persist-then-fan-out flow with the send-message websocket event.
func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.SendMessage(ctx.Context(), userID, req.Receiver, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrEmptyBody) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    fiber.StatusCreated,
		"data":    res,
	})
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	otherID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	res, err := c.service.GetMessages(ctx.Context(), userID, otherID)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    fiber.StatusOK,
		"data":    res,
	})
}

func (c *chatController) MarkRead(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	messageID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	res, err := c.service.MarkRead(ctx.Context(), userID, messageID)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
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
