package message

import (
	"context"
	"errors"
	"strings"

	common_models "go-chat/internal/common/models"
	"go-chat/internal/features/channel"
	"go-chat/pkg/apperrors"
	"go-chat/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const defaultPageSize = 50

type CreateMessageInput struct {
	ChannelID string `json:"channelId"`
	Content   string `json:"content"`
	Type      string `json:"type"`
}

type UpdateMessageInput struct {
	Content string `json:"content"`
}

type SearchInput struct {
	Query     string
	ChannelID string
	UserID    string
	Limit     int64
	Offset    int64
}

type MessageService interface {
	GetByChannel(ctx context.Context, channelID primitive.ObjectID, limit, offset int64) ([]Message, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]Message, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Message, error)
	Search(ctx context.Context, input SearchInput) ([]Message, error)
	Create(ctx context.Context, input CreateMessageInput, authorID primitive.ObjectID) (*Message, error)
	Update(ctx context.Context, id primitive.ObjectID, input UpdateMessageInput, caller *utils.UserClaims) (*Message, error)
	Delete(ctx context.Context, id primitive.ObjectID, caller *utils.UserClaims) error
}

type MessageServiceImpl struct {
	repo           MessageRepository
	channelService channel.ChannelService
	logger         *zap.Logger
}

func NewMessageService(repo MessageRepository, channelService channel.ChannelService, logger *zap.Logger) MessageService {
	return &MessageServiceImpl{
		repo:           repo,
		channelService: channelService,
		logger:         logger,
	}
}

func normalizePage(limit, offset int64) (int64, int64) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *MessageServiceImpl) GetByChannel(ctx context.Context, channelID primitive.ObjectID, limit, offset int64) ([]Message, error) {
	limit, offset = normalizePage(limit, offset)
	return s.repo.FindByChannel(ctx, channelID, limit, offset)
}

func (s *MessageServiceImpl) GetByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]Message, error) {
	limit, offset = normalizePage(limit, offset)
	return s.repo.FindByUser(ctx, userID, limit, offset)
}

func (s *MessageServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*Message, error) {
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("message %s", id.Hex())
		}
		return nil, err
	}
	return msg, nil
}

func (s *MessageServiceImpl) Search(ctx context.Context, input SearchInput) ([]Message, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, apperrors.Validationf("search query is required")
	}

	filter := SearchFilter{Query: input.Query}
	filter.Limit, filter.Offset = normalizePage(input.Limit, input.Offset)

	if input.ChannelID != "" {
		channelID, err := primitive.ObjectIDFromHex(input.ChannelID)
		if err != nil {
			return nil, apperrors.Validationf("invalid channel ID")
		}
		filter.ChannelID = &channelID
	}
	if input.UserID != "" {
		userID, err := primitive.ObjectIDFromHex(input.UserID)
		if err != nil {
			return nil, apperrors.Validationf("invalid user ID")
		}
		filter.UserID = &userID
	}

	return s.repo.Search(ctx, filter)
}

// Create stamps the author from the authenticated caller; a user id carried
// in the request body is never trusted.
func (s *MessageServiceImpl) Create(ctx context.Context, input CreateMessageInput, authorID primitive.ObjectID) (*Message, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.Validationf("message content is required")
	}

	channelID, err := primitive.ObjectIDFromHex(input.ChannelID)
	if err != nil {
		return nil, apperrors.Validationf("a valid channel reference is required")
	}

	// Reference must resolve before the insert
	if _, err := s.channelService.GetChannelByID(ctx, channelID); err != nil {
		return nil, err
	}

	msgType := input.Type
	if msgType == "" {
		msgType = common_models.MessageTypeText
	}
	if msgType != common_models.MessageTypeText && msgType != common_models.MessageTypeFile {
		return nil, apperrors.Validationf("unknown message type %q", msgType)
	}

	msg := &Message{
		Content:   input.Content,
		UserID:    authorID,
		ChannelID: channelID,
		Type:      msgType,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *MessageServiceImpl) Update(ctx context.Context, id primitive.ObjectID, input UpdateMessageInput, caller *utils.UserClaims) (*Message, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.UserID.Hex() != caller.UserID {
		return nil, apperrors.Forbiddenf("you can only update your own messages")
	}

	if strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.Validationf("message content is required")
	}

	if err := s.repo.UpdateContent(ctx, id, input.Content); err != nil {
		return nil, err
	}

	existing.Content = input.Content
	existing.Edited = true
	return existing, nil
}

// Delete reports success even when the underlying delete removed nothing;
// deleting an already-deleted message is not an error.
func (s *MessageServiceImpl) Delete(ctx context.Context, id primitive.ObjectID, caller *utils.UserClaims) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.UserID.Hex() != caller.UserID {
		return apperrors.Forbiddenf("you can only delete your own messages")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		s.logger.Debug("delete affected no documents", zap.String("messageId", id.Hex()))
	}

	return nil
}
