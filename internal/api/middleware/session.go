package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/kudoshq/kudos-api/internal/api/metrics"
	"github.com/kudoshq/kudos-api/internal/api/session"
	"github.com/kudoshq/kudos-api/internal/core/service"
)

// ContextUserID is the echo context key the resolved user id is stored under.
const ContextUserID = "user_id"

// Session resolves the session cookie and, when it verifies, injects the
// user id into context. It never rejects a request: an absent, tampered, or
// expired cookie is treated exactly like no cookie at all.
func Session(codec *service.SessionCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value := session.Value(c.Request())
			if value == "" {
				metrics.SessionsResolvedTotal.WithLabelValues("absent").Inc()
				return next(c)
			}

			userID, ok := codec.Decode(value)
			if !ok {
				metrics.SessionsResolvedTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			metrics.SessionsResolvedTotal.WithLabelValues("valid").Inc()
			c.Set(ContextUserID, userID)
			return next(c)
		}
	}
}

// RequireUser guards protected routes. Requests without a resolved user id
// are short-circuited with a redirect to the login page carrying the original
// request path, so the caller can return after authenticating. Handlers
// behind this middleware never run unauthenticated.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(ContextUserID).(string); !ok {
				return c.Redirect(http.StatusFound, loginRedirect(c.Request().URL.Path))
			}
			return next(c)
		}
	}
}

// RedirectIfAuthenticated sends already-authenticated requests away from
// anonymous-only pages such as the login page.
func RedirectIfAuthenticated(target string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(ContextUserID).(string); ok {
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}

func loginRedirect(returnPath string) string {
	q := url.Values{}
	q.Set(session.RedirectToParam, returnPath)
	return session.LoginPath + "?" + q.Encode()
}
