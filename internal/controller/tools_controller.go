package controller

import (
	"admissions-ai-be/internal/pkg/serverutils"
	"admissions-ai-be/pkg/toolgw"

	"github.com/gofiber/fiber/v2"
)

type IToolsController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type toolsController struct {
	gateway *toolgw.Gateway
}

func NewToolsController(gateway *toolgw.Gateway) IToolsController {
	return &toolsController{gateway: gateway}
}

func (c *toolsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tools/v1")
	h.Get("health", c.Health)
}

func (c *toolsController) Health(ctx *fiber.Ctx) error {
	tools, err := c.gateway.ListTools(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("tool gateway unavailable"))
	}
	return ctx.JSON(serverutils.SuccessResponse("tool gateway healthy", fiber.Map{
		"healthy": true,
		"tools":   tools,
	}))
}
