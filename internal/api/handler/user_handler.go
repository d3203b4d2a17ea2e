package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/volleybot/admin-api/internal/core/domain"
	"github.com/volleybot/admin-api/internal/core/ports"
)

// UserHandler lists the users known to the admin surface.
type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// List returns every user that has signed in at least once.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.Principal
// @Failure      401  {object}  detailResponse
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.Principal{}
	}
	return c.JSON(http.StatusOK, users)
}
