package admin

import (
	"go-chat/internal/config"
	"go-chat/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AdminApi struct {
	controller *AdminController
	config     *config.Config
}

func NewAdminApi(controller *AdminController, config *config.Config) *AdminApi {
	return &AdminApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the admin console routes. Everything requires an admin
// role; user management and the export are restricted to super admins.
func (h *AdminApi) Setup(app *fiber.App) {
	admin := app.Group("/api/admin",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequireAdmin())

	admin.Get("/dashboard", h.controller.GetDashboardStats)
	admin.Get("/stats", h.controller.GetSystemStats)
	admin.Get("/groups/stats", h.controller.GetGroupStats)
	admin.Get("/channels/stats", h.controller.GetChannelStats)

	admin.Get("/users/export", middleware.RequireSuperAdmin(), h.controller.ExportUsers)
	admin.Get("/users", middleware.RequireSuperAdmin(), h.controller.ListUsers)
	admin.Post("/users", middleware.RequireSuperAdmin(), h.controller.CreateUser)
	admin.Delete("/users/:id", middleware.RequireSuperAdmin(), h.controller.DeleteUser)
	admin.Get("/users/:userId/activity", h.controller.GetUserActivity)
}
