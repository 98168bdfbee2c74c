package channel

import (
	"go-chat/internal/config"
	"go-chat/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ChannelApi struct {
	controller *ChannelController
	config     *config.Config
}

func NewChannelApi(controller *ChannelController, config *config.Config) *ChannelApi {
	return &ChannelApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all channel-related routes
func (h *ChannelApi) Setup(app *fiber.App) {
	channels := app.Group("/api/channels", middleware.AuthMiddleware(h.config.SkipAuth))

	channels.Get("/", h.controller.GetChannels)
	channels.Post("/", h.controller.CreateChannel)
	channels.Get("/:id", h.controller.GetChannel)
	channels.Put("/:id", h.controller.UpdateChannel)
	channels.Delete("/:id", h.controller.DeleteChannel)
}
