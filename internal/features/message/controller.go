package message

import (
	common_api "go-chat/internal/common/api"
	"go-chat/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageController struct {
	Service MessageService
}

func NewMessageController(service MessageService) *MessageController {
	return &MessageController{Service: service}
}

func (ctrl *MessageController) GetMessagesByChannel(c *fiber.Ctx) error {
	channelID, err := primitive.ObjectIDFromHex(c.Params("channelId"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid channel ID")
	}

	limit := int64(c.QueryInt("limit", 50))
	offset := int64(c.QueryInt("offset", 0))

	messages, err := ctrl.Service.GetByChannel(c.UserContext(), channelID, limit, offset)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, messages)
}

func (ctrl *MessageController) GetMessagesByUser(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	limit := int64(c.QueryInt("limit", 50))
	offset := int64(c.QueryInt("offset", 0))

	messages, err := ctrl.Service.GetByUser(c.UserContext(), userID, limit, offset)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, messages)
}

func (ctrl *MessageController) SearchMessages(c *fiber.Ctx) error {
	input := SearchInput{
		Query:     c.Query("q"),
		ChannelID: c.Query("channelId"),
		UserID:    c.Query("userId"),
		Limit:     int64(c.QueryInt("limit", 50)),
		Offset:    int64(c.QueryInt("offset", 0)),
	}

	messages, err := ctrl.Service.Search(c.UserContext(), input)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, messages)
}

func (ctrl *MessageController) GetMessage(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid message ID")
	}

	msg, err := ctrl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, msg)
}

func (ctrl *MessageController) CreateMessage(c *fiber.Ctx) error {
	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	authorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input CreateMessageInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	msg, err := ctrl.Service.Create(c.UserContext(), input, authorID)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusCreated, msg)
}

func (ctrl *MessageController) UpdateMessage(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid message ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input UpdateMessageInput
	if err := c.BodyParser(&input); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	msg, err := ctrl.Service.Update(c.UserContext(), id, input, claims)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, msg)
}

func (ctrl *MessageController) DeleteMessage(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid message ID")
	}

	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return common_api.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if err := ctrl.Service.Delete(c.UserContext(), id, claims); err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.SuccessMessage(c, fiber.StatusOK, "Message deleted successfully")
}
