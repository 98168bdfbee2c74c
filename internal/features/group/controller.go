package group

import (
	common_api "go-chat/internal/common/api"
	"go-chat/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GroupController struct {
	Service GroupService
}

func NewGroupController(service GroupService) *GroupController {
	return &GroupController{Service: service}
}

func (ctrl *GroupController) CreateGroup(c *fiber.Ctx) error {
	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	ownerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input CreateGroupInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	group, err := ctrl.Service.CreateGroup(c.UserContext(), input, ownerID)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusCreated, group)
}

func (ctrl *GroupController) GetAllGroups(c *fiber.Ctx) error {
	groups, err := ctrl.Service.GetAllGroups(c.UserContext())
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, groups)
}

func (ctrl *GroupController) GetGroup(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	group, err := ctrl.Service.GetGroupByID(c.UserContext(), id)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, group)
}

func (ctrl *GroupController) UpdateGroup(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input UpdateGroupInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	group, err := ctrl.Service.UpdateGroup(c.UserContext(), id, input, claims)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, group)
}

func (ctrl *GroupController) DeleteGroup(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if err := ctrl.Service.DeleteGroup(c.UserContext(), id, claims); err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.SuccessMessage(c, fiber.StatusOK, "Group deleted successfully")
}

func (ctrl *GroupController) AddMember(c *fiber.Ctx) error {
	groupID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	userID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := ctrl.Service.AddMember(c.UserContext(), groupID, userID, claims); err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.SuccessMessage(c, fiber.StatusOK, "Member added successfully")
}

func (ctrl *GroupController) RemoveMember(c *fiber.Ctx) error {
	groupID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if err := ctrl.Service.RemoveMember(c.UserContext(), groupID, userID, claims); err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.SuccessMessage(c, fiber.StatusOK, "Member removed successfully")
}
