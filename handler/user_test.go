package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mayen007/qrgen/auth"
	"github.com/Mayen007/qrgen/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestUserHandler(t *testing.T) *UserHandler {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	return NewUserHandler(rdb, jwtManager)
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handlerFunc(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	uh := newTestUserHandler(t)

	// Register
	w := postJSON(t, uh.Register, "/api/auth/register", model.RegisterRequest{
		Email:    "User@Example.com",
		Password: "longenough",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d (body: %s)", w.Code, http.StatusCreated, w.Body.String())
	}

	var created model.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	if created.AccessToken == "" || created.RefreshToken == "" {
		t.Error("register response missing tokens")
	}
	if created.User.Email != "user@example.com" {
		t.Errorf("stored email = %q, want lowercased", created.User.Email)
	}

	// Duplicate registration is rejected
	w = postJSON(t, uh.Register, "/api/auth/register", model.RegisterRequest{
		Email:    "user@example.com",
		Password: "longenough",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want %d", w.Code, http.StatusConflict)
	}

	// Login with the right password
	w = postJSON(t, uh.Login, "/api/auth/login", model.LoginRequest{
		Email:    "user@example.com",
		Password: "longenough",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d", w.Code, http.StatusOK)
	}

	// Wrong password
	w = postJSON(t, uh.Login, "/api/auth/login", model.LoginRequest{
		Email:    "user@example.com",
		Password: "wrongpassword",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	// Unknown account
	w = postJSON(t, uh.Login, "/api/auth/login", model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "longenough",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown account status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRegisterValidation(t *testing.T) {
	uh := newTestUserHandler(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "longenough"},
		{"email without at sign", "not-an-email", "longenough"},
		{"short password", "user@example.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, uh.Register, "/api/auth/register", model.RegisterRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
