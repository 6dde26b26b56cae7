package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kudoshq/kudos-api/internal/core/domain"
	"github.com/kudoshq/kudos-api/internal/core/ports"
)

type UserHandler struct {
	userRepo ports.UserRepository
}

func NewUserHandler(userRepo ports.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

type updateProfileRequest struct {
	FirstName      string `json:"first_name" form:"first_name" validate:"required,min=2"`
	LastName       string `json:"last_name" form:"last_name" validate:"required,min=2"`
	Department     string `json:"department" form:"department" validate:"required,oneof=MARKETING SALES ENGINEERING HR"`
	ProfilePicture string `json:"profile_picture" form:"profile_picture" validate:"omitempty,url"`
}

// List returns every registered user, for picking kudo recipients.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userRepo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Profile returns the session user's own record.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Router       /profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userRepo.FindByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile saves the session user's name, department, and avatar URL.
// The avatar itself lives on an external image host; only its URL is stored.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.userRepo.UpdateProfile(c.Request().Context(), userID, domain.Profile{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Department:     domain.Department(req.Department),
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}
