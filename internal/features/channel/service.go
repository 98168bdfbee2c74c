package channel

import (
	"context"
	"errors"
	"strings"

	common_models "go-chat/internal/common/models"
	"go-chat/internal/features/group"
	"go-chat/pkg/apperrors"
	"go-chat/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type CreateChannelInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GroupID     string `json:"groupId"`
	IsPrivate   bool   `json:"isPrivate"`
}

type UpdateChannelInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPrivate   *bool   `json:"isPrivate"`
}

type ChannelService interface {
	CreateChannel(ctx context.Context, input CreateChannelInput, creatorID primitive.ObjectID) (*Channel, error)
	GetChannelByID(ctx context.Context, id primitive.ObjectID) (*Channel, error)
	GetChannelsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]Channel, error)
	UpdateChannel(ctx context.Context, id primitive.ObjectID, input UpdateChannelInput, caller *utils.UserClaims) (*Channel, error)
	DeleteChannel(ctx context.Context, id primitive.ObjectID, caller *utils.UserClaims) error
}

type ChannelServiceImpl struct {
	repo         ChannelRepository
	groupService group.GroupService
	logger       *zap.Logger
}

func NewChannelService(repo ChannelRepository, groupService group.GroupService, logger *zap.Logger) ChannelService {
	return &ChannelServiceImpl{
		repo:         repo,
		groupService: groupService,
		logger:       logger,
	}
}

func (s *ChannelServiceImpl) CreateChannel(ctx context.Context, input CreateChannelInput, creatorID primitive.ObjectID) (*Channel, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apperrors.Validationf("channel name is required")
	}

	groupID, err := primitive.ObjectIDFromHex(input.GroupID)
	if err != nil {
		return nil, apperrors.Validationf("a valid group reference is required")
	}

	// Reference must resolve before the insert
	if _, err := s.groupService.GetGroupByID(ctx, groupID); err != nil {
		return nil, err
	}

	channel := &Channel{
		Name:        input.Name,
		Description: input.Description,
		GroupID:     groupID,
		IsPrivate:   input.IsPrivate,
		CreatedBy:   creatorID,
	}

	if err := s.repo.Create(ctx, channel); err != nil {
		return nil, err
	}

	s.logger.Info("channel created",
		zap.String("channelId", channel.ID.Hex()),
		zap.String("groupId", groupID.Hex()))
	return channel, nil
}

func (s *ChannelServiceImpl) GetChannelByID(ctx context.Context, id primitive.ObjectID) (*Channel, error) {
	channel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("channel %s", id.Hex())
		}
		return nil, err
	}
	return channel, nil
}

func (s *ChannelServiceImpl) GetChannelsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]Channel, error) {
	return s.repo.FindByGroup(ctx, groupID)
}

func canManage(channel *Channel, caller *utils.UserClaims) bool {
	return channel.CreatedBy.Hex() == caller.UserID ||
		caller.HasRole(common_models.RoleAdmin) ||
		caller.HasRole(common_models.RoleSuperAdmin)
}

func (s *ChannelServiceImpl) UpdateChannel(ctx context.Context, id primitive.ObjectID, input UpdateChannelInput, caller *utils.UserClaims) (*Channel, error) {
	existing, err := s.GetChannelByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canManage(existing, caller) {
		return nil, apperrors.Forbiddenf("only the channel creator can update the channel")
	}

	if input.Name != nil {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.IsPrivate != nil {
		existing.IsPrivate = *input.IsPrivate
	}

	if existing.Name == "" {
		return nil, apperrors.Validationf("channel name is required")
	}

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ChannelServiceImpl) DeleteChannel(ctx context.Context, id primitive.ObjectID, caller *utils.UserClaims) error {
	existing, err := s.GetChannelByID(ctx, id)
	if err != nil {
		return err
	}

	if !canManage(existing, caller) {
		return apperrors.Forbiddenf("only the channel creator can delete the channel")
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("channel deleted", zap.String("channelId", id.Hex()))
	return nil
}
