package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kudoshq/kudos-api/internal/api/metrics"
	"github.com/kudoshq/kudos-api/internal/api/middleware"
	"github.com/kudoshq/kudos-api/internal/api/session"
	"github.com/kudoshq/kudos-api/internal/core/domain"
	"github.com/kudoshq/kudos-api/internal/core/ports"
	"github.com/kudoshq/kudos-api/internal/core/service"
)

type AuthHandler struct {
	authService ports.AuthService
	userRepo    ports.UserRepository
	codec       *service.SessionCodec
	secure      bool
}

// NewAuthHandler wires the auth flows. secure controls the cookie's Secure
// attribute and should be true in production environments.
func NewAuthHandler(authService ports.AuthService, userRepo ports.UserRepository, codec *service.SessionCodec, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, userRepo: userRepo, codec: codec, secure: secure}
}

type registerRequest struct {
	Email      string `json:"email" form:"email" validate:"required,email"`
	Password   string `json:"password" form:"password" validate:"required,min=5"`
	FirstName  string `json:"first_name" form:"first_name" validate:"required,min=2"`
	LastName   string `json:"last_name" form:"last_name" validate:"required,min=2"`
	Department string `json:"department" form:"department" validate:"omitempty,oneof=MARKETING SALES ENGINEERING HR"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Register creates a new account, establishes a session, and redirects to
// the landing page.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      302
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Department: domain.Department(req.Department),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusConflict, map[string]string{"error": "user already exists"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid credentials"})
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return h.establishSession(c, user.ID)
}

// Login authenticates a user, establishes a session, and redirects to the
// landing page. Unknown email and wrong password are indistinguishable.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      302
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return h.establishSession(c, user.ID)
}

// Logout discards the session cookie and redirects to the login page. It
// never fails, even when no session cookie was present.
//
// @Summary      Logout
// @Tags         auth
// @Success      302
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(session.ExpiredCookie(h.secure))
	return c.Redirect(http.StatusFound, session.LoginPath)
}

// LoginPage serves the anonymous login screen payload. Authenticated
// requests never reach it; RedirectIfAuthenticated sends them to the
// landing page first.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"authenticated": false,
		"redirect_to":   c.QueryParam(session.RedirectToParam),
	})
}

// Me returns the user resolved from the session cookie, or a null user for
// anonymous requests. It sits behind optional resolution only, so it never
// redirects.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return c.JSON(http.StatusOK, map[string]any{"user": nil})
	}

	user, err := h.userRepo.FindByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Valid signature but the account is gone: drop the session.
			c.SetCookie(session.ExpiredCookie(h.secure))
			return c.JSON(http.StatusOK, map[string]any{"user": nil})
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

// establishSession mints the cookie for userID and redirects to the landing
// page. Nothing is persisted server-side; the signed cookie is the session.
func (h *AuthHandler) establishSession(c echo.Context, userID string) error {
	value, err := h.codec.Encode(userID)
	if err != nil {
		return err
	}
	c.SetCookie(session.NewCookie(value, h.codec.TTL(), h.secure))
	return c.Redirect(http.StatusFound, session.LandingPath)
}
