package controller

import (
	"bufio"
	"strconv"

	"admissions-ai-be/internal/dto"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/internal/pkg/serverutils"
	"admissions-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatController(chatService service.IChatService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		logger:      log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai/v1/chat")
	h.Post("send", c.Send)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id/messages", c.ListMessages)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Query("project_id"))
	if err != nil {
		return serverutils.NewValidationError("project_id is required")
	}
	userId, err := strconv.ParseInt(ctx.Query("user_id"), 10, 64)
	if err != nil {
		return serverutils.NewValidationError("user_id is required")
	}

	res, err := c.chatService.List(ctx.Context(), projectId, userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list chat sessions", res))
}

func (c *chatController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("invalid chat id")
	}

	var req dto.UpdateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.Update(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update chat session", nil))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("invalid chat id")
	}
	projectId, err := uuid.Parse(ctx.Query("project_id"))
	if err != nil {
		return serverutils.NewValidationError("project_id is required")
	}

	if err := c.chatService.Delete(ctx.Context(), projectId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete chat session", nil))
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("invalid chat id")
	}

	res, err := c.chatService.ListMessages(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

// Send streams the answer as chunked text/plain. Validation and dispatch
// errors surface before the first byte; mid-stream failures can only be
// logged since the status line is already gone.
func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	stream, err := c.chatService.SendMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for chunk := range stream {
			if chunk.Err != nil {
				c.logger.Error("chat", "stream failed mid-answer", map[string]interface{}{
					"chat_id": req.ChatId.String(),
					"error":   chunk.Err.Error(),
				})
				return
			}
			if _, err := w.WriteString(chunk.Content); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				// Client went away; the service's relay handles cleanup.
				return
			}
		}
	}))
	return nil
}
