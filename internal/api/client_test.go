// pattern: Imperative Shell

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fiberdesk/internal/layout"
	"fiberdesk/internal/logging"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, logging.NopLogger()), srv
}

func signedTestToken(t *testing.T, name string, roles []string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"UserInfo": map[string]any{"name": name, "roles": roles},
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLogin_StoresTokenAndDecodesIdentity(t *testing.T) {
	var c *Client
	token := ""
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "admin@example.com" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": token})
	})
	c, _ = newTestClient(t, mux)
	token = signedTestToken(t, "Admin", []string{"admin", "user"})

	id, err := c.Login(context.Background(), "admin@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if id.Name != "Admin" || !id.IsAdmin() {
		t.Errorf("unexpected identity: %+v", id)
	}
	if !c.HasSession() {
		t.Error("expected access token stored")
	}
}

func TestLogin_InvalidCredentialsMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.Login(context.Background(), "a@b.c", "wrong")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != 401 || apiErr.Message != "invalid credentials" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestDo_RefreshAndRetryExactlyOnce(t *testing.T) {
	userCalls := 0
	refreshCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		userCalls++
		if userCalls == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode([]User{{ID: "u1", Name: "Alice"}})
	})
	mux.HandleFunc("GET /refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh"})
	})
	c, _ := newTestClient(t, mux)

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("expected refreshed retry to succeed, got %v", err)
	}
	if len(users) != 1 || users[0].Name != "Alice" {
		t.Errorf("unexpected users: %+v", users)
	}
	if userCalls != 2 || refreshCalls != 1 {
		t.Errorf("expected 2 user calls and 1 refresh, got %d and %d", userCalls, refreshCalls)
	}
}

func TestDo_SecondForbiddenExpiresSession(t *testing.T) {
	userCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		userCalls++
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("GET /refresh", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh"})
	})
	c, _ := newTestClient(t, mux)

	_, err := c.ListUsers(context.Background())

	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if userCalls != 2 {
		t.Errorf("expected exactly one retry, got %d calls", userCalls)
	}
	if c.HasSession() {
		t.Error("expected token cleared after expiry")
	}
}

func TestDo_FailedRefreshExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("GET /refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, _ := newTestClient(t, mux)

	if _, err := c.ListUsers(context.Background()); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := New(srv.URL, time.Second, logging.NopLogger())
	srv.Close()

	_, err := c.ListUsers(context.Background())

	if !errors.Is(err, ErrServerNotResponding) {
		t.Errorf("expected ErrServerNotResponding, got %v", err)
	}
}

func TestDo_BackendMessagePreferredOverFallback(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "topFloor must be numeric"})
	}))

	err := c.SaveLayout(context.Background(), "b1", nil, false)

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "topFloor must be numeric" {
		t.Errorf("expected backend message, got %q", apiErr.Message)
	}
}

func TestFallbackMessages(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{400, "missing required fields"},
		{401, "invalid credentials"},
		{403, "access denied"},
		{429, "too many requests, slow down"},
		{500, "server error, try again later"},
		{503, "server error, try again later"},
	}

	for _, tt := range tests {
		if got := fallbackMessage(tt.status); got != tt.want {
			t.Errorf("fallbackMessage(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestSaveLayout_CreateUsesPostUpdateUsesPut(t *testing.T) {
	var methods []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		var blocks []layout.Block
		if err := json.NewDecoder(r.Body).Decode(&blocks); err != nil {
			t.Errorf("body is not a block array: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))

	blocks := []layout.Block{{FirstFloor: 0}}
	if err := c.SaveLayout(context.Background(), "b1", blocks, true); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := c.SaveLayout(context.Background(), "b1", blocks, false); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if len(methods) != 2 || methods[0] != http.MethodPost || methods[1] != http.MethodPut {
		t.Errorf("expected [POST PUT], got %v", methods)
	}
}

func TestListUsers_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	if _, err := c.ListUsers(ctx); err == nil {
		t.Error("expected error after cancellation")
	}
}

func TestRequestCarriesCorrelationID(t *testing.T) {
	var gotID string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode([]Place{})
	}))

	if _, err := c.Cities(context.Background()); err != nil {
		t.Fatalf("cities failed: %v", err)
	}
	if gotID == "" {
		t.Error("expected X-Request-ID header")
	}
}
