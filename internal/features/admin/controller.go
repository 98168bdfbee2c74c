package admin

import (
	"fmt"
	"time"

	common_api "go-chat/internal/common/api"
	"go-chat/internal/features/user"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminController struct {
	Service AdminService
	Users   user.UserService
}

func NewAdminController(service AdminService, users user.UserService) *AdminController {
	return &AdminController{Service: service, Users: users}
}

func (ctrl *AdminController) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := ctrl.Service.GetDashboardStats(c.UserContext())
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, stats)
}

func (ctrl *AdminController) GetSystemStats(c *fiber.Ctx) error {
	stats, err := ctrl.Service.GetSystemStats(c.UserContext())
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, stats)
}

func (ctrl *AdminController) GetGroupStats(c *fiber.Ctx) error {
	stats, err := ctrl.Service.GetGroupStats(c.UserContext())
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, stats)
}

func (ctrl *AdminController) GetChannelStats(c *fiber.Ctx) error {
	stats, err := ctrl.Service.GetChannelStats(c.UserContext())
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, stats)
}

func (ctrl *AdminController) GetUserActivity(c *fiber.Ctx) error {
	activity, err := ctrl.Service.GetUserActivity(c.UserContext())
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, activity)
}

func (ctrl *AdminController) ListUsers(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 50))
	offset := int64(c.QueryInt("offset", 0))
	search := c.Query("search")

	users, total, err := ctrl.Users.ListUsers(c.UserContext(), search, limit, offset)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, fiber.Map{
		"users": users,
		"total": total,
	})
}

func (ctrl *AdminController) CreateUser(c *fiber.Ctx) error {
	var input user.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	created, err := ctrl.Users.CreateUser(c.UserContext(), input)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusCreated, created)
}

func (ctrl *AdminController) DeleteUser(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := ctrl.Users.DeleteUser(c.UserContext(), id); err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.SuccessMessage(c, fiber.StatusOK, "User deleted successfully")
}

func (ctrl *AdminController) ExportUsers(c *fiber.Ctx) error {
	data, err := ctrl.Service.ExportUsers(c.UserContext())
	if err != nil {
		return common_api.FromError(c, err)
	}

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}
