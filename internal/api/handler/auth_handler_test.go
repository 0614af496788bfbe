package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tourhub/marketplace/internal/api/middleware"
	"github.com/tourhub/marketplace/internal/core/domain"
	"github.com/tourhub/marketplace/internal/core/ports"
)

type stubAuthService struct {
	registerFn      func(ctx context.Context, in ports.RegisterInput) (*domain.User, string, error)
	loginFn         func(ctx context.Context, email, password string) (*domain.User, string, error)
	sessionFn       func(ctx context.Context, token string) (*domain.User, error)
	updateProfileFn func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	loggedOut       []string
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput, _ ports.ClientInfo) (*domain.User, string, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string, _ ports.ClientInfo) (*domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(_ context.Context, token string, _ ports.ClientInfo) {
	s.loggedOut = append(s.loggedOut, token)
}

func (s *stubAuthService) Session(ctx context.Context, token string) (*domain.User, error) {
	return s.sessionFn(ctx, token)
}

func (s *stubAuthService) VerifySession(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, _ ports.ClientInfo) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, update)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func aliceUser() *domain.User {
	return &domain.User{
		RecordID:      "recAlice",
		UserID:        "usr_1",
		Email:         "a@b.com",
		PasswordHash:  "$2a$10$secret",
		FullName:      "A B",
		UserType:      domain.UserTypeTraveler,
		AccountStatus: domain.AccountActive,
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, string, error) {
			if in.Email != "a@b.com" || in.FullName != "A B" || in.UserType != "Traveler" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return aliceUser(), "token123", nil
		},
	}
	handler := NewAuthHandler(stub, NewSessionCookies(false), zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/register", `{"email":"a@b.com","password":"secret1","fullName":"A B","userType":"Traveler"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user := resp["user"]
	if user["email"] != "a@b.com" || user["accountStatus"] != "Active" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, ok := user["password"]; ok {
		t.Fatalf("password leaked in response")
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("password hash leaked in response")
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.Value != "token123" {
		t.Fatalf("expected session cookie, got %+v", cookie)
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteStrictMode || cookie.Path != "/" || cookie.MaxAge != 7*24*3600 {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
	if cookie.Secure {
		t.Fatalf("cookie must not be Secure outside production")
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	handler := NewAuthHandler(stub, NewSessionCookies(false), zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register", `{"email":"a@b.com"}`), rec)

	err := handler.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "password is required") {
		t.Fatalf("expected JSON field names in message, got %q", err.Error())
	}
	if sessionCookie(t, rec) != nil {
		t.Fatalf("no cookie expected on failure")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, string, error) {
			return nil, "", domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, NewSessionCookies(false), zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register", `{"email":"a@b.com","password":"p","fullName":"A","userType":"Traveler"}`), rec)

	if err := handler.Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, NewSessionCookies(false), zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/register", "not-json"), rec)

	var he *echo.HTTPError
	if err := handler.Register(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.User, string, error) {
			if email != "a@b.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return aliceUser(), "token123", nil
		},
	}
	handler := NewAuthHandler(stub, NewSessionCookies(true), zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"secret1"}`), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || !cookie.Secure {
		t.Fatalf("expected Secure cookie in production, got %+v", cookie)
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidCredentials, domain.ErrAccountInactive} {
		e := newTestEcho()
		stub := &stubAuthService{
			loginFn: func(context.Context, string, string) (*domain.User, string, error) {
				return nil, "", want
			},
		}
		handler := NewAuthHandler(stub, NewSessionCookies(false), zerolog.Nop())

		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"x"}`), rec)

		if err := handler.Login(c); err != want {
			t.Fatalf("expected %v, got %v", want, err)
		}
		if sessionCookie(t, rec) != nil {
			t.Fatalf("no cookie expected on %v", want)
		}
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{}
	handler := NewAuthHandler(stub, NewSessionCookies(false), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "token123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.loggedOut) != 1 || stub.loggedOut[0] != "token123" {
		t.Fatalf("expected token passed to logout, got %v", stub.loggedOut)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Logout_WithoutCookie(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{}
	handler := NewAuthHandler(stub, NewSessionCookies(false), zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), rec)

	if err := handler.Logout(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", rec.Code, err)
	}
	if len(stub.loggedOut) != 0 {
		t.Fatalf("logout should not be called without a token")
	}
}

func TestAuthHandler_Session(t *testing.T) {
	tests := []struct {
		name        string
		cookie      string
		err         error
		wantUser    bool
		wantCleared bool
	}{
		{name: "no cookie"},
		{name: "valid", cookie: "good", wantUser: true},
		{name: "invalid token", cookie: "bad", err: domain.ErrInvalidToken, wantCleared: true},
		{name: "inactive", cookie: "good", err: domain.ErrAccountInactive, wantCleared: true},
		{name: "vanished", cookie: "good", err: domain.ErrUserNotFound, wantCleared: true},
		{name: "store outage", cookie: "good", err: domain.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{
				sessionFn: func(context.Context, string) (*domain.User, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return aliceUser(), nil
				},
			}
			handler := NewAuthHandler(stub, NewSessionCookies(false), zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.Session(c); err != nil {
				t.Fatalf("session must never fail, got %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}

			var resp struct {
				User *domain.User `json:"user"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if (resp.User != nil) != tt.wantUser {
				t.Fatalf("unexpected user %+v", resp.User)
			}
			if !tt.wantUser && !strings.Contains(rec.Body.String(), `"user":null`) {
				t.Fatalf("expected explicit null user, got %s", rec.Body.String())
			}
			if cleared := sessionCookie(t, rec) != nil; cleared != tt.wantCleared {
				t.Fatalf("cookie cleared = %v, want %v", cleared, tt.wantCleared)
			}
		})
	}
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		updateProfileFn: func(_ context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
			if userID != "usr_1" {
				t.Fatalf("unexpected user id %s", userID)
			}
			if update.FullName == nil || *update.FullName != "Alice" || update.PhoneNumber != nil {
				t.Fatalf("unexpected update: %+v", update)
			}
			u := aliceUser()
			u.FullName = "Alice"
			return u, nil
		},
	}
	handler := NewAuthHandler(stub, NewSessionCookies(false), zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/api/auth/profile", `{"fullName":"Alice","email":"evil@x.com","accountStatus":"Active"}`), rec)
	middleware.SetIdentity(c, &domain.Identity{UserID: "usr_1"})

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_UpdateProfile_NoWhitelistedFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		updateProfileFn: func(_ context.Context, _ string, update domain.ProfileUpdate) (*domain.User, error) {
			if !update.IsEmpty() {
				t.Fatalf("expected empty update, got %+v", update)
			}
			return nil, domain.ErrNoProfileFields
		},
	}
	handler := NewAuthHandler(stub, NewSessionCookies(false), zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/api/auth/profile", `{"notAllowedField":"x"}`), rec)
	middleware.SetIdentity(c, &domain.Identity{UserID: "usr_1"})

	if err := handler.UpdateProfile(c); err != domain.ErrNoProfileFields {
		t.Fatalf("expected ErrNoProfileFields, got %v", err)
	}
}

func TestAuthHandler_UpdateProfile_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, NewSessionCookies(false), zerolog.Nop())

	c := e.NewContext(jsonRequest(http.MethodPatch, "/api/auth/profile", `{"fullName":"A"}`), httptest.NewRecorder())

	if err := handler.UpdateProfile(c); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
