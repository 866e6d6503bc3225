package handler

import (
	"log/slog"
	"net/http"
	"time"

	"soko/internal/delivery/http/middleware"
	"soko/internal/delivery/http/response"
	"soko/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers
type UserHandler struct {
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{logger: params.Logger}
}

// UserResponse is the public JSON shape of a user
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

// GetMe returns the authenticated caller's synced profile. The auth
// middleware already upserted the record, so this is a straight read off
// the request context.
func (h *UserHandler) GetMe(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication is required")
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "Profile retrieved successfully")
}
