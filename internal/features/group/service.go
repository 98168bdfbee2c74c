package group

import (
	"context"
	"errors"
	"strings"

	common_models "go-chat/internal/common/models"
	"go-chat/pkg/apperrors"
	"go-chat/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserFinder is the slice of the user store this feature needs to verify
// member references before writes. Wired with an adapter in main.
type UserFinder interface {
	UserExists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type CreateGroupInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"isPrivate"`
}

type UpdateGroupInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPrivate   *bool   `json:"isPrivate"`
	IsActive    *bool   `json:"isActive"`
}

type GroupService interface {
	CreateGroup(ctx context.Context, input CreateGroupInput, ownerID primitive.ObjectID) (*Group, error)
	GetAllGroups(ctx context.Context) ([]Group, error)
	GetGroupByID(ctx context.Context, id primitive.ObjectID) (*Group, error)
	UpdateGroup(ctx context.Context, id primitive.ObjectID, input UpdateGroupInput, caller *utils.UserClaims) (*Group, error)
	DeleteGroup(ctx context.Context, id primitive.ObjectID, caller *utils.UserClaims) error
	AddMember(ctx context.Context, groupID, userID primitive.ObjectID, caller *utils.UserClaims) error
	RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID, caller *utils.UserClaims) error
	GetUserGroups(ctx context.Context, userID primitive.ObjectID) ([]Group, error)
}

type GroupServiceImpl struct {
	repo   GroupRepository
	users  UserFinder
	logger *zap.Logger
}

func NewGroupService(repo GroupRepository, users UserFinder, logger *zap.Logger) GroupService {
	return &GroupServiceImpl{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

func (s *GroupServiceImpl) CreateGroup(ctx context.Context, input CreateGroupInput, ownerID primitive.ObjectID) (*Group, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apperrors.Validationf("group name is required")
	}

	group := &Group{
		Name:        input.Name,
		Description: input.Description,
		IsPrivate:   input.IsPrivate,
		IsActive:    true,
		OwnerID:     ownerID,
		Members:     []primitive.ObjectID{ownerID},
	}

	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	s.logger.Info("group created",
		zap.String("groupId", group.ID.Hex()),
		zap.String("userId", ownerID.Hex()))
	return group, nil
}

func (s *GroupServiceImpl) GetAllGroups(ctx context.Context) ([]Group, error) {
	return s.repo.FindAll(ctx)
}

func (s *GroupServiceImpl) GetGroupByID(ctx context.Context, id primitive.ObjectID) (*Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("group %s", id.Hex())
		}
		return nil, err
	}
	return group, nil
}

// canManage re-derives the ownership check from the fetched group and the
// caller claims on every call; nothing is cached.
func canManage(group *Group, caller *utils.UserClaims) bool {
	return group.OwnerID.Hex() == caller.UserID ||
		caller.HasRole(common_models.RoleAdmin) ||
		caller.HasRole(common_models.RoleSuperAdmin)
}

func (s *GroupServiceImpl) UpdateGroup(ctx context.Context, id primitive.ObjectID, input UpdateGroupInput, caller *utils.UserClaims) (*Group, error) {
	existing, err := s.GetGroupByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canManage(existing, caller) {
		return nil, apperrors.Forbiddenf("only the group owner can update the group")
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
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	if existing.Name == "" {
		return nil, apperrors.Validationf("group name is required")
	}

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, id primitive.ObjectID, caller *utils.UserClaims) error {
	existing, err := s.GetGroupByID(ctx, id)
	if err != nil {
		return err
	}

	if !canManage(existing, caller) {
		return apperrors.Forbiddenf("only the group owner can delete the group")
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("group deleted", zap.String("groupId", id.Hex()))
	return nil
}

func (s *GroupServiceImpl) AddMember(ctx context.Context, groupID, userID primitive.ObjectID, caller *utils.UserClaims) error {
	existing, err := s.GetGroupByID(ctx, groupID)
	if err != nil {
		return err
	}

	if !canManage(existing, caller) {
		return apperrors.Forbiddenf("only the group owner can add members")
	}

	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFoundf("user %s", userID.Hex())
	}

	return s.repo.AddMember(ctx, groupID, userID)
}

func (s *GroupServiceImpl) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID, caller *utils.UserClaims) error {
	existing, err := s.GetGroupByID(ctx, groupID)
	if err != nil {
		return err
	}

	// Members may remove themselves; anyone else needs to manage the group
	if caller.UserID != userID.Hex() && !canManage(existing, caller) {
		return apperrors.Forbiddenf("only the group owner can remove members")
	}

	return s.repo.RemoveMember(ctx, groupID, userID)
}

func (s *GroupServiceImpl) GetUserGroups(ctx context.Context, userID primitive.ObjectID) ([]Group, error) {
	return s.repo.FindByMember(ctx, userID)
}
