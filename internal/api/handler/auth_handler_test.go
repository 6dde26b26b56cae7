package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kudoshq/kudos-api/internal/api/middleware"
	"github.com/kudoshq/kudos-api/internal/api/session"
	"github.com/kudoshq/kudos-api/internal/core/domain"
	"github.com/kudoshq/kudos-api/internal/core/ports"
	"github.com/kudoshq/kudos-api/internal/core/service"
)

type stubAuthService struct {
	users map[string]*domain.User // keyed by email
}

func newStubAuthService() *stubAuthService {
	return &stubAuthService{users: make(map[string]*domain.User)}
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	if _, exists := s.users[input.Email]; exists {
		return nil, domain.ErrUserExists
	}
	user := &domain.User{
		ID:    "user-" + input.Email,
		Email: input.Email,
		Profile: domain.Profile{
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Department: domain.DefaultDepartment,
		},
	}
	s.users[input.Email] = user
	// The stub keeps the plaintext only to answer Login below.
	s.users[input.Email].PasswordHash = input.Password
	return user, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*domain.User, error) {
	user, ok := s.users[email]
	if !ok || user.PasswordHash != password {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

type stubUserFinder struct {
	users map[string]*domain.User // keyed by id
}

func (r *stubUserFinder) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserFinder) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserFinder) CountByEmail(_ context.Context, _ string) (int64, error) { return 0, nil }

func (r *stubUserFinder) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *stubUserFinder) UpdateProfile(_ context.Context, _ string, _ domain.Profile) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserFinder) List(_ context.Context) ([]*domain.User, error) { return nil, nil }

func newTestCodec(t *testing.T) *service.SessionCodec {
	t.Helper()
	codec, err := service.NewSessionCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionCodec: %v", err)
	}
	return codec
}

func newAuthTestEnv(t *testing.T) (*echo.Echo, *AuthHandler, *service.SessionCodec) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	codec := newTestCodec(t)
	h := NewAuthHandler(newStubAuthService(), &stubUserFinder{users: map[string]*domain.User{}}, codec, false)
	return e, h, codec
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", session.CookieName)
	return nil
}

func TestAuthHandler_Register_SetsCookieAndRedirects(t *testing.T) {
	e, h, codec := newAuthTestEnv(t)

	c, rec := postJSON(e, "/auth/register",
		`{"email":"a@x.com","password":"secret1","first_name":"Ada","last_name":"Lovelace"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != session.LandingPath {
		t.Fatalf("expected redirect to %s, got %q", session.LandingPath, got)
	}

	cookie := sessionCookie(t, rec)
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("session cookie must be SameSite=Lax")
	}
	userID, ok := codec.Decode(cookie.Value)
	if !ok {
		t.Fatalf("cookie value must decode with the issuing codec")
	}
	if userID != "user-a@x.com" {
		t.Fatalf("unexpected user id in session: %q", userID)
	}
	if strings.Contains(cookie.Value, "secret1") {
		t.Fatalf("cookie must not embed the password")
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e, h, _ := newAuthTestEnv(t)

	body := `{"email":"a@x.com","password":"secret1","first_name":"Ada","last_name":"Lovelace"}`
	c, _ := postJSON(e, "/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("first register: %v", err)
	}

	c, rec := postJSON(e, "/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("second register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e, h, _ := newAuthTestEnv(t)

	c, rec := postJSON(e, "/auth/register", `{"email":"not-an-email","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	e, h, _ := newAuthTestEnv(t)

	c, _ := postJSON(e, "/auth/register",
		`{"email":"a@x.com","password":"secret1","first_name":"Ada","last_name":"Lovelace"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	c, rec := postJSON(e, "/auth/login", `{"email":"a@x.com","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			t.Fatalf("failed login must not set a session cookie")
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e, h, codec := newAuthTestEnv(t)

	c, _ := postJSON(e, "/auth/register",
		`{"email":"a@x.com","password":"secret1","first_name":"Ada","last_name":"Lovelace"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	c, rec := postJSON(e, "/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}

	cookie := sessionCookie(t, rec)
	if _, ok := codec.Decode(cookie.Value); !ok {
		t.Fatalf("fresh login cookie must decode")
	}
}

func TestAuthHandler_Logout_AlwaysClearsCookie(t *testing.T) {
	e, h, _ := newAuthTestEnv(t)

	// No session cookie on the request at all; logout still succeeds.
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != session.LoginPath {
		t.Fatalf("expected redirect to %s, got %q", session.LoginPath, got)
	}

	cookie := sessionCookie(t, rec)
	if cookie.Value != "" {
		t.Fatalf("cleared cookie must carry an empty value")
	}
	if cookie.MaxAge >= 0 {
		t.Fatalf("cleared cookie must expire immediately, MaxAge=%d", cookie.MaxAge)
	}
}

func TestAuthHandler_Me_Anonymous(t *testing.T) {
	e, h, _ := newAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"user":null`) {
		t.Fatalf("anonymous session must resolve to a null user, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_ResolvedSession(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	codec := newTestCodec(t)

	finder := &stubUserFinder{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "a@x.com"},
	}}
	h := NewAuthHandler(newStubAuthService(), finder, codec, false)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserID, "user-1")

	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"a@x.com"`) {
		t.Fatalf("expected the resolved user in the response, got %s", rec.Body.String())
	}
}
