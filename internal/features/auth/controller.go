package auth

import (
	"errors"

	common_api "go-chat/internal/common/api"
	"go-chat/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	AuthService AuthService
}

func NewAuthController(authService AuthService) *AuthController {
	return &AuthController{
		AuthService: authService,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	usr, err := ctrl.AuthService.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusCreated, usr)
}

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return common_api.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	token, usr, err := ctrl.AuthService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return common_api.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return common_api.FromError(c, err)
	}

	return common_api.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  usr,
	})
}
