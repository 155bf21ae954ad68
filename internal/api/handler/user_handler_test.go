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

	"github.com/softtronics/msw-portal/internal/core/domain"
	"github.com/softtronics/msw-portal/internal/core/ports"
)

type stubUserService struct {
	signupFn func(ctx context.Context, input ports.SignupInput) (*domain.User, error)
	listFn   func(ctx context.Context) ([]*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubUserService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, input)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestUserHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{signupFn: func(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
		if input.Username != "bob" || input.Vendor != "V200" {
			t.Fatalf("unexpected input: %+v", input)
		}
		return &domain.User{ID: "user_2", Username: input.Username, Role: domain.RoleStandard}, nil
	}})

	c, rec := postJSON(e, "/api/signup", `{"username":"bob","password":"longpassword","name":"Bob Jones","email":"bob@example.com","vendor":"V200"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Signup_Validation(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{signupFn: func(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
		t.Fatalf("service must not be called for invalid payloads")
		return nil, nil
	}})

	for _, body := range []string{
		`{"username":"bob","password":"short","name":"Bob","email":"bob@example.com"}`,
		`{"username":"bob","password":"longpassword","name":"Bob","email":"not-an-email"}`,
		`{"password":"longpassword","name":"Bob","email":"bob@example.com"}`,
	} {
		c, _ := postJSON(e, "/api/signup", body)
		err := h.Signup(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestUserHandler_Signup_Duplicate(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{signupFn: func(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
		return nil, domain.ErrUserExists
	}})

	c, _ := postJSON(e, "/api/signup", `{"username":"bob","password":"longpassword","name":"Bob","email":"bob@example.com"}`)
	if err := h.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserHandler_List_OmitsPasswordHashes(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{listFn: func(ctx context.Context) ([]*domain.User, error) {
		return []*domain.User{
			{ID: "user_1", Username: "alice", Name: "Alice", Email: "alice@example.com", PasswordHash: "$2a$10$secret", Role: domain.RoleAdmin},
			{ID: "user_2", Username: "bob", Name: "Bob", Email: "bob@example.com", PasswordHash: "$2a$10$secret", Role: domain.RoleStandard},
		}, nil
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp.Users))
	}
	if resp.Users[0].Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %q", resp.Users[0].Role)
	}
	if strings.Contains(rec.Body.String(), "$2a$10$secret") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newTestEcho()

	tests := []struct {
		name    string
		id      string
		svcErr  error
		wantErr error
	}{
		{"success", "user_2", nil, nil},
		{"admin protected", "user_1", domain.ErrAdminProtected, domain.ErrAdminProtected},
		{"not found", "ghost", domain.ErrUserNotFound, domain.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&stubUserService{deleteFn: func(ctx context.Context, id string) error {
				if id != tt.id {
					t.Fatalf("expected id %q, got %q", tt.id, id)
				}
				return tt.svcErr
			}})

			req := httptest.NewRequest(http.MethodDelete, "/api/users/"+tt.id, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			err := h.Delete(c)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Delete returned error: %v", err)
				}
				if rec.Code != http.StatusOK {
					t.Fatalf("expected 200, got %d", rec.Code)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
