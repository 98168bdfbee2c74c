package grouprequest

import (
	"go-chat/internal/config"
	"go-chat/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type GroupRequestApi struct {
	controller *GroupRequestController
	config     *config.Config
}

func NewGroupRequestApi(controller *GroupRequestController, config *config.Config) *GroupRequestApi {
	return &GroupRequestApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers join-request routes. Creation and listing hang off the
// group resource; review and the cross-group views live under their own
// prefix.
func (h *GroupRequestApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	groups := app.Group("/api/groups", auth)
	groups.Post("/:id/requests", h.controller.CreateRequest)
	groups.Get("/:id/requests", h.controller.GetGroupRequests)

	requests := app.Group("/api/group-requests", auth)
	requests.Get("/mine", h.controller.GetMyRequests)
	requests.Get("/pending", middleware.RequireAdmin(), h.controller.GetPendingRequests)
	requests.Put("/:id/review", h.controller.ReviewRequest)
}
