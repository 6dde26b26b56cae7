// Package session owns the session cookie contract: its name, attributes,
// and the routes auth flows redirect to.
package session

import (
	"net/http"
	"time"
)

// CookieName is the fixed name of the session cookie.
const CookieName = "kudos_session"

// Route targets used by the auth flows and the session guard.
const (
	LoginPath   = "/login"
	LandingPath = "/home"
	// RedirectToParam carries the caller's original path through the login
	// redirect so they can be sent back after authenticating.
	RedirectToParam = "redirectTo"
)

// NewCookie builds the session cookie holding the encoded value.
// Secure is set by the caller based on the runtime environment.
func NewCookie(value string, maxAge time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds the cookie that instructs the client to discard the
// session.
func ExpiredCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Value extracts the raw session cookie value from a request, or "" when the
// cookie is absent.
func Value(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
