package message

import (
	"go-chat/internal/config"
	"go-chat/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MessageApi struct {
	controller *MessageController
	config     *config.Config
}

func NewMessageApi(controller *MessageController, config *config.Config) *MessageApi {
	return &MessageApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all message-related routes
func (h *MessageApi) Setup(app *fiber.App) {
	messages := app.Group("/api/messages", middleware.AuthMiddleware(h.config.SkipAuth))

	messages.Post("/", h.controller.CreateMessage)
	messages.Get("/search", h.controller.SearchMessages)
	messages.Get("/channel/:channelId", h.controller.GetMessagesByChannel)
	messages.Get("/user/:userId", h.controller.GetMessagesByUser)
	messages.Get("/:id", h.controller.GetMessage)
	messages.Put("/:id", h.controller.UpdateMessage)
	messages.Delete("/:id", h.controller.DeleteMessage)
}
