package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kudoshq/kudos-api/internal/api/middleware"
)

// ctxUserID extracts the user id injected by the session middleware and
// fast-fails before any service call. Behind RequireUser this cannot trigger;
// the check guards against a route being wired without the guard.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return userID, nil
}
