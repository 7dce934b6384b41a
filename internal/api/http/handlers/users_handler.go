package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/service"
	apperrors "github.com/spec-kit/user-service/pkg/util/errorutil"
)

// UsersHandler exposes registration and lookup endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /user/new.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.users.CreateUser(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	if !result.IsSuccess() {
		return apperrors.NewValidationMessages(result.Messages())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewUserResponse(result.Data()),
	})
}

// FindByEmail handles GET /user?email=.
func (h *UsersHandler) FindByEmail(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return apperrors.NewValidationError("email query parameter required", nil)
	}

	user, err := h.users.FindByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user", map[string]any{"email": email})
	}

	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
