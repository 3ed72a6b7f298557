package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resumeforge/internal/config"
	"resumeforge/pkg/models"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Remote.BaseURL = srv.URL
	cfg.Remote.Timeout = 5 * time.Second
	return NewClient(cfg), srv
}

func TestLogin(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(Session{
			Token: "tok-123",
			User:  User{ID: "u1", Email: req.Email},
		})
	}))

	session, err := client.Login(context.Background(), models.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.Token != "tok-123" || session.User.Email != "ada@example.com" {
		t.Errorf("session = %+v", session)
	}
	if !session.Authenticated() {
		t.Error("session with a token should be authenticated")
	}
}

func TestLoginRejected(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	if !errors.Is(err, ErrAuthRequired) {
		t.Errorf("err = %v, want ErrAuthRequired", err)
	}
}

func TestGenerateATSResume(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/resume/Ats_resume" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte("<html>resume</html>"))
	}))

	html, err := client.GenerateATSResume(context.Background(),
		Session{Token: "tok-123"}, models.NewResumeDocument(), nil)
	if err != nil {
		t.Fatalf("GenerateATSResume failed: %v", err)
	}
	if html != "<html>resume</html>" {
		t.Errorf("html = %q", html)
	}
}

func TestGenerateATSResumeWithoutSession(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unauthenticated call must not reach the backend")
	}))

	_, err := client.GenerateATSResume(context.Background(), Session{}, models.NewResumeDocument(), nil)
	if !errors.Is(err, ErrAuthRequired) {
		t.Errorf("err = %v, want ErrAuthRequired", err)
	}
}

func TestCurrentUserNotFound(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.CurrentUser(context.Background(), Session{Token: "tok-123"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuthRequired},
		{http.StatusForbidden, ErrAuthRequired},
		{http.StatusNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		if got := statusError(tt.status, ""); !errors.Is(got, tt.want) {
			t.Errorf("statusError(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}

	var remoteErr *Error
	err := statusError(http.StatusBadGateway, "upstream down")
	if !errors.As(err, &remoteErr) || remoteErr.StatusCode != http.StatusBadGateway {
		t.Errorf("statusError(502) = %v", err)
	}
}
