package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobtracker/jobtracker-go/internal/crypto"
	"github.com/jobtracker/jobtracker-go/internal/model"
	"github.com/jobtracker/jobtracker-go/internal/repository"
)

func newTestAuthService() (*AuthService, *repository.MemoryUserRepository) {
	repo := repository.NewMemoryUserRepository()
	return NewAuthService(repo, "test-secret", 24*time.Hour), repo
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService()

	tests := []struct {
		name    string
		req     model.CreateUserRequest
		wantErr error
	}{
		{name: "empty email", req: model.CreateUserRequest{Password: "pw"}, wantErr: ErrEmailRequired},
		{name: "blank email", req: model.CreateUserRequest{Email: "   ", Password: "pw"}, wantErr: ErrEmailRequired},
		{name: "empty password", req: model.CreateUserRequest{Email: "a@x.com"}, wantErr: ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Register(context.Background(), tt.req); err != tt.wantErr {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	if err := svc.Register(ctx, model.CreateUserRequest{Email: " A@X.com ", Password: "pw"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	user, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() unexpected error: %v", err)
	}
	if user.PasswordHash == "pw" || user.PasswordHash == "" {
		t.Errorf("stored password hash = %q", user.PasswordHash)
	}
	if ok, _ := crypto.VerifyPassword("pw", user.PasswordHash); !ok {
		t.Error("stored hash does not verify the registered password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if err := svc.Register(ctx, model.CreateUserRequest{Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	for _, email := range []string{"a@x.com", "A@x.com", " a@x.com"} {
		err := svc.Register(ctx, model.CreateUserRequest{Email: email, Password: "other"})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("Register(%q) error = %v, want %v", email, err, ErrEmailTaken)
		}
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()
	if err := svc.Register(ctx, model.CreateUserRequest{Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		req     model.LoginRequest
		wantErr error
	}{
		{name: "success", req: model.LoginRequest{Email: "a@x.com", Password: "pw"}},
		{name: "email is case-insensitive", req: model.LoginRequest{Email: "A@X.COM", Password: "pw"}},
		{name: "unknown account", req: model.LoginRequest{Email: "b@x.com", Password: "pw"}, wantErr: ErrAccountNotFound},
		{name: "wrong password", req: model.LoginRequest{Email: "a@x.com", Password: "nope"}, wantErr: ErrIncorrectPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, tt.req)
			if err != tt.wantErr {
				t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if resp.Token == "" {
				t.Fatal("Login() returned empty token")
			}
			if _, err := svc.VerifyToken(resp.Token); err != nil {
				t.Errorf("VerifyToken() unexpected error: %v", err)
			}
		})
	}
}

func TestVerifyToken(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()
	if err := svc.Register(ctx, model.CreateUserRequest{Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	user, _ := repo.GetByEmail(ctx, "a@x.com")

	resp, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	id, err := svc.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("VerifyToken() unexpected error: %v", err)
	}
	if id != user.ID {
		t.Errorf("VerifyToken() = %q, want %q", id, user.ID)
	}

	expired, err := crypto.GenerateToken(user.ID, "test-secret", -time.Second)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	foreign, err := crypto.GenerateToken(user.ID, "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	for name, token := range map[string]string{
		"missing":    "",
		"malformed":  "abc.def",
		"expired":    expired,
		"bad secret": foreign,
		"tampered":   resp.Token + "x",
	} {
		if _, err := svc.VerifyToken(token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("VerifyToken(%s) error = %v, want %v", name, err, ErrUnauthorized)
		}
	}
}
