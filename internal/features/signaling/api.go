package signaling

import (
	"go-chat/internal/config"
	"go-chat/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type SignalingApi struct {
	controller *SignalingController
	config     *config.Config
}

func NewSignalingApi(controller *SignalingController, config *config.Config) *SignalingApi {
	return &SignalingApi{
		controller: controller,
		config:     config,
	}
}

func (h *SignalingApi) Setup(app *fiber.App) {
	app.Get("/api/video-calls/ws",
		middleware.AuthMiddleware(h.config.SkipAuth),
		upgradeRequired,
		websocket.New(h.controller.HandleConnection))
}

// upgradeRequired rejects plain HTTP requests before the upgrade handler
func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
