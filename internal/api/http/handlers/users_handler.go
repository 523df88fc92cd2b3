package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/places-service/internal/api/dto"
	"github.com/spec-kit/places-service/internal/service"
	"github.com/spec-kit/places-service/internal/upload"
	apperrors "github.com/spec-kit/places-service/pkg/util"
	"github.com/spec-kit/places-service/pkg/validation"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	accounts *service.AccountService
	stager   *upload.Stager
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accountService *service.AccountService, stager *upload.Stager) *UsersHandler {
	return &UsersHandler{accounts: accountService, stager: stager}
}

// ListUsers GET /api/users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.accounts.ListUsers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"users": items})
}

// Signup POST /api/users/signup. Multipart: image + name, email, password.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	req := dto.SignupRequest{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	header, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("an image file is required", nil)
	}
	staged, err := h.stager.Stage(header)
	if err != nil {
		return err
	}

	user, token, _, err := h.accounts.Register(c.Context(), req.Name, req.Email, req.Password, staged)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	})
}

// Login POST /api/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	user, token, _, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	})
}
