package grouprequest

import (
	common_api "go-chat/internal/common/api"
	"go-chat/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GroupRequestController struct {
	Service GroupRequestService
}

func NewGroupRequestController(service GroupRequestService) *GroupRequestController {
	return &GroupRequestController{Service: service}
}

func (ctrl *GroupRequestController) CreateRequest(c *fiber.Ctx) error {
	groupID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	request, err := ctrl.Service.Create(c.UserContext(), groupID, input, claims)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusCreated, request)
}

func (ctrl *GroupRequestController) GetGroupRequests(c *fiber.Ctx) error {
	groupID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	requests, err := ctrl.Service.GetByGroup(c.UserContext(), groupID, claims)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, requests)
}

func (ctrl *GroupRequestController) GetMyRequests(c *fiber.Ctx) error {
	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	requests, err := ctrl.Service.GetMine(c.UserContext(), claims)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, requests)
}

func (ctrl *GroupRequestController) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := ctrl.Service.GetPending(c.UserContext())
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, requests)
}

func (ctrl *GroupRequestController) ReviewRequest(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	request, err := ctrl.Service.Review(c.UserContext(), id, input, claims)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, request)
}
