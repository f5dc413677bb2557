package users_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-scraps/apperr"
	"github.com/goliatone/go-scraps/auth"
	"github.com/goliatone/go-scraps/pkg/testsupport"
	"github.com/goliatone/go-scraps/users"
)

func newService(t *testing.T) (*users.Service, *testsupport.UserRepo, *auth.TokenManager) {
	t.Helper()
	repo := testsupport.NewUserRepo()
	tokens := auth.NewTokenManager(auth.Config{Secret: []byte("test-secret")})
	return users.NewService(repo, tokens), repo, tokens
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _, tokens := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "mario", "hunter2")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.UID == "" {
		t.Fatal("Register did not assign a uid")
	}
	if user.Password == "hunter2" {
		t.Fatal("password stored in clear text")
	}

	token, err := svc.Authenticate(ctx, "mario", "hunter2")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	uid, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if uid != user.UID {
		t.Errorf("token subject = %q, want %q", uid, user.UID)
	}
}

func TestRegisterConflict(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "mario", "a"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Register(ctx, "mario", "b")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("second Register = %v, want conflict", err)
	}
	if apperr.Message(err) != "Username already exists" {
		t.Errorf("message = %q", apperr.Message(err))
	}
}

func TestAvailable(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if err := svc.Available(ctx, "free"); err != nil {
		t.Errorf("Available(free) = %v, want nil", err)
	}

	if _, err := svc.Register(ctx, "taken", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := svc.Available(ctx, "taken"); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("Available(taken) = %v, want conflict", err)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Authenticate(context.Background(), "ghost", "pw")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("Authenticate(ghost) = %v, want not found", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "mario", "right"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Authenticate(ctx, "mario", "wrong")
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("Authenticate with wrong password = %v, want forbidden", err)
	}
}
