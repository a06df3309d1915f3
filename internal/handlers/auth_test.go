package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"trading_dashboard/internal/models"
	"trading_dashboard/internal/service"
)

func TestRootAndHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := do(r, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK || decode(t, w)["message"] != msgRunning {
		t.Fatalf("root: %d %s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || decode(t, w)["status"] != "ok" {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestRegister(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		wantCode  int
		wantError string
		wantField string
	}{
		{"success", nil, http.StatusOK, "", ""},
		{"validation", &service.ValidationError{Field: "email", Rule: "format", Message: "Invalid email format"}, http.StatusBadRequest, "Invalid email format", "email"},
		{"username taken", &service.ConflictError{Field: "username"}, http.StatusConflict, "Username already exists", ""},
		{"email taken", &service.ConflictError{Field: "email"}, http.StatusConflict, "Email already registered", ""},
		{"store failure", errors.New("disk I/O error"), http.StatusInternalServerError, errInternal, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{
				registerUser: models.PublicUser{ID: 5, Username: "alice", Email: "a@x.io", CreatedAt: "2025-01-01T00:00:00Z"},
				registerErr:  tc.err,
			}
			r := newTestRouter(&service.Service{Authorization: auth})

			w := do(r, http.MethodPost, "/register", `{"username":"alice","email":"a@x.io","full_name":"A","password":"secret1"}`, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			m := decode(t, w)
			if tc.err == nil {
				user := m["user"].(map[string]any)
				if m["success"] != true || m["message"] != msgRegistered || user["username"] != "alice" {
					t.Fatalf("unexpected body: %v", m)
				}
				if _, ok := user["password_hash"]; ok {
					t.Fatalf("hash leaked: %v", user)
				}
				if auth.lastRegister.FullName != "A" || auth.lastRegister.Password != "secret1" {
					t.Fatalf("service got %+v", auth.lastRegister)
				}
				return
			}
			if m["error"] != tc.wantError {
				t.Fatalf("error=%v, want %q", m["error"], tc.wantError)
			}
			if tc.wantField != "" && m["field"] != tc.wantField {
				t.Fatalf("field=%v, want %q", m["field"], tc.wantField)
			}
		})
	}
}

func TestRegister_BadBody(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})
	if w := do(r, http.MethodPost, "/register", `{"username":1}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	exp := time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)
	auth := &mockAuth{loginRes: service.LoginResult{
		AccessToken: "tok123",
		TokenType:   "bearer",
		ExpiresAt:   exp,
		User:        models.PublicUser{ID: 1, Username: "u", CreatedAt: "2025-01-01T00:00:00Z"},
	}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := do(r, http.MethodPost, "/login", `{"username":"u","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	m := decode(t, w)
	if m["access_token"] != "tok123" || m["token_type"] != "bearer" || m["expires_at"] != "2025-01-01T12:30:00Z" {
		t.Fatalf("unexpected body: %v", m)
	}

	// missing password → 400
	if w := do(r, http.MethodPost, "/login", `{"username":"u"}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}

	auth.loginErr = service.ErrAuthentication
	w = do(r, http.MethodPost, "/login", `{"username":"u","password":"wrong"}`, nil)
	if w.Code != http.StatusUnauthorized || decode(t, w)["error"] != "invalid username or password" {
		t.Fatalf("wrong password: %d %s", w.Code, w.Body.String())
	}
}

func TestForgotPassword(t *testing.T) {
	auth := &mockAuth{forgotRes: service.ForgotResult{Message: service.ForgotPasswordMessage}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := do(r, http.MethodPost, "/forgot-password", `{"email":"ghost@x.io"}`, nil)
	m := decode(t, w)
	if w.Code != http.StatusOK || m["message"] != service.ForgotPasswordMessage {
		t.Fatalf("forgot: %d %v", w.Code, m)
	}
	if _, ok := m["reset_token"]; ok {
		t.Fatalf("reset_token present without test mode: %v", m)
	}
	if auth.lastForgotEmail != "ghost@x.io" {
		t.Fatalf("service got %q", auth.lastForgotEmail)
	}

	auth.forgotRes.ResetToken = "abc"
	if m := decode(t, do(r, http.MethodPost, "/forgot-password", `{"email":"a@x.io"}`, nil)); m["reset_token"] != "abc" {
		t.Fatalf("expected echoed token, got %v", m)
	}

	if w := do(r, http.MethodPost, "/forgot-password", `{}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestResetPassword(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"success", nil, http.StatusOK},
		{"invalid token", service.ErrInvalidToken, http.StatusBadRequest},
		{"weak password", &service.ValidationError{Field: "new_password", Message: "Password must be at least 6 characters"}, http.StatusBadRequest},
		{"user missing", fmt.Errorf("user for reset request: %w", service.ErrNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{resetErr: tc.err}
			r := newTestRouter(&service.Service{Authorization: auth})

			w := do(r, http.MethodPost, "/reset-password", `{"token":"t0k","new_password":"newpass"}`, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if auth.lastResetToken != "t0k" || auth.lastResetPass != "newpass" {
				t.Fatalf("service got %q/%q", auth.lastResetToken, auth.lastResetPass)
			}
			if tc.err == nil && decode(t, w)["message"] != msgResetComplete {
				t.Fatalf("unexpected body: %s", w.Body.String())
			}
			if errors.Is(tc.err, service.ErrInvalidToken) && decode(t, w)["error"] != errResetToken {
				t.Fatalf("unexpected body: %s", w.Body.String())
			}
		})
	}
}
