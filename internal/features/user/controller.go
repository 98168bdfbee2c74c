package user

import (
	common_api "go-chat/internal/common/api"
	"go-chat/internal/features/group"
	"go-chat/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserController struct {
	Service UserService
	Groups  group.GroupService
}

func NewUserController(service UserService, groups group.GroupService) *UserController {
	return &UserController{Service: service, Groups: groups}
}

func (ctrl *UserController) GetAllUsers(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 50))
	offset := int64(c.QueryInt("offset", 0))
	search := c.Query("search")

	users, total, err := ctrl.Service.ListUsers(c.UserContext(), search, limit, offset)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, fiber.Map{
		"users": users,
		"total": total,
	})
}

func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	usr, err := ctrl.Service.GetUser(c.UserContext(), id)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, usr)
}

func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var input CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	usr, err := ctrl.Service.CreateUser(c.UserContext(), input)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusCreated, usr)
}

func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	usr, err := ctrl.Service.UpdateUser(c.UserContext(), id, input, claims)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, usr)
}

func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := ctrl.Service.DeleteUser(c.UserContext(), id); err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.SuccessMessage(c, fiber.StatusOK, "User deleted successfully")
}

func (ctrl *UserController) GetUserGroups(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	groups, err := ctrl.Groups.GetUserGroups(c.UserContext(), id)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, groups)
}
