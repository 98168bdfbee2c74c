package channel

import (
	common_api "go-chat/internal/common/api"
	"go-chat/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChannelController struct {
	Service ChannelService
}

func NewChannelController(service ChannelService) *ChannelController {
	return &ChannelController{Service: service}
}

func (ctrl *ChannelController) CreateChannel(c *fiber.Ctx) error {
	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	creatorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input CreateChannelInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	channel, err := ctrl.Service.CreateChannel(c.UserContext(), input, creatorID)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusCreated, channel)
}

func (ctrl *ChannelController) GetChannels(c *fiber.Ctx) error {
	groupID, err := primitive.ObjectIDFromHex(c.Query("groupId"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid group ID")
	}

	channels, err := ctrl.Service.GetChannelsByGroup(c.UserContext(), groupID)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, channels)
}

func (ctrl *ChannelController) GetChannel(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid channel ID")
	}

	channel, err := ctrl.Service.GetChannelByID(c.UserContext(), id)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, channel)
}

func (ctrl *ChannelController) UpdateChannel(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid channel ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input UpdateChannelInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	channel, err := ctrl.Service.UpdateChannel(c.UserContext(), id, input, claims)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, channel)
}

func (ctrl *ChannelController) DeleteChannel(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid channel ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if err := ctrl.Service.DeleteChannel(c.UserContext(), id, claims); err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.SuccessMessage(c, fiber.StatusOK, "Channel deleted successfully")
}
