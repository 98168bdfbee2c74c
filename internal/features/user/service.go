package user

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

type CreateUserInput struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type UpdateUserInput struct {
	Username *string   `json:"username"`
	Email    *string   `json:"email"`
	Roles    *[]string `json:"roles"`
	IsActive *bool     `json:"isActive"`
}

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*User, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*User, error)
	ListUsers(ctx context.Context, search string, limit, offset int64) ([]User, int64, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, input UpdateUserInput, caller *utils.UserClaims) (*User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

type UserServiceImpl struct {
	repo   UserRepository
	logger *zap.Logger
}

func NewUserService(repo UserRepository, logger *zap.Logger) UserService {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.Validationf("username, email and password are required")
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.Conflictf("user with email %s already exists", input.Email)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.Conflictf("username %s is taken", input.Username)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	roles := input.Roles
	if len(roles) == 0 {
		roles = []string{common_models.RoleUser}
	}

	newUser := &User{
		Username: input.Username,
		Email:    input.Email,
		Password: hash,
		Roles:    roles,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("userId", newUser.ID.Hex()))
	return newUser, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id primitive.ObjectID) (*User, error) {
	usr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("user %s", id.Hex())
		}
		return nil, err
	}
	return usr, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, search string, limit, offset int64) ([]User, int64, error) {
	return s.repo.List(ctx, search, limit, offset)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id primitive.ObjectID, input UpdateUserInput, caller *utils.UserClaims) (*User, error) {
	existing, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	isSuperAdmin := caller.HasRole(common_models.RoleSuperAdmin)
	if caller.UserID != id.Hex() && !isSuperAdmin {
		return nil, apperrors.Forbiddenf("you can only update your own account")
	}

	// Role set and active flag are admin-only fields
	if (input.Roles != nil || input.IsActive != nil) && !isSuperAdmin {
		return nil, apperrors.Forbiddenf("only a super admin can change roles or active status")
	}

	if input.Username != nil {
		existing.Username = strings.TrimSpace(*input.Username)
	}
	if input.Email != nil {
		existing.Email = strings.TrimSpace(*input.Email)
	}
	if input.Roles != nil {
		existing.Roles = *input.Roles
	}
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	if existing.Username == "" || existing.Email == "" {
		return nil, apperrors.Validationf("username and email cannot be empty")
	}

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperrors.NotFoundf("user %s", id.Hex())
	}

	s.logger.Info("user deleted", zap.String("userId", id.Hex()))
	return nil
}
