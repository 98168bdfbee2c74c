package auth

import (
	"context"
	"errors"
	"time"

	"go-chat/internal/features/user"
	"go-chat/pkg/apperrors"
	"go-chat/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*user.User, error)
	Login(ctx context.Context, username, password string) (string, *user.User, error)
}

type AuthServiceImpl struct {
	UserService user.UserService
	UserRepo    user.UserRepository
	Logger      *zap.Logger
}

func NewAuthService(userService user.UserService, userRepo user.UserRepository, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{
		UserService: userService,
		UserRepo:    userRepo,
		Logger:      logger,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	return s.UserService.CreateUser(ctx, user.CreateUserInput{
		Username: username,
		Email:    email,
		Password: password,
	})
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, *user.User, error) {
	usr, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil, apperrors.ErrUnauthorized
		}
		return "", nil, err
	}

	if !utils.CheckPassword(usr.Password, password) {
		return "", nil, apperrors.ErrUnauthorized
	}

	if !usr.IsActive {
		return "", nil, apperrors.Forbiddenf("account is deactivated")
	}

	now := time.Now()
	if err := s.UserRepo.UpdateLastLogin(ctx, usr.ID, now); err != nil {
		s.Logger.Warn("failed to update last login", zap.String("userId", usr.ID.Hex()), zap.Error(err))
	}
	usr.LastLogin = &now

	token, err := utils.GenerateToken(usr.ID, usr.Username, usr.Roles)
	if err != nil {
		return "", nil, err
	}

	return token, usr, nil
}
