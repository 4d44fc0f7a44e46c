package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"zenjourney/internal/models/db_models"
	"zenjourney/internal/models/request_models"
	"zenjourney/pkg/utils"
)

type memAccountRepo struct {
	byEmail map[string]*db_models.Account
	err     error
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{byEmail: map[string]*db_models.Account{}}
}

func (m *memAccountRepo) Insert(_ context.Context, a *db_models.Account) error {
	if m.err != nil {
		return m.err
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.byEmail[a.Email] = a
	return nil
}

func (m *memAccountRepo) FindById(_ context.Context, id string) (*db_models.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.byEmail {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byEmail[email], nil
}

func newTestAccountService(repo *memAccountRepo) (AccountServiceInterface, *utils.TokenSigner) {
	signer := utils.NewTokenSigner("test-secret", time.Hour, 5*time.Minute)
	return NewAccountService(repo, signer, "@admin.com", zap.NewNop()), signer
}

func TestRoleForEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"ops@admin.com", RoleAdmin},
		{" OPS@Admin.com ", RoleAdmin},
		{"traveler@example.com", RoleUser},
		{"admin.com@example.com", RoleUser},
	}
	for _, tt := range tests {
		if got := RoleForEmail(tt.email, "@admin.com"); got != tt.want {
			t.Errorf("RoleForEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
	if got := RoleForEmail("ops@admin.com", ""); got != RoleUser {
		t.Errorf("empty admin domain granted %q", got)
	}
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	repo := newMemAccountRepo()
	svc, signer := newTestAccountService(repo)
	ctx := context.Background()

	identity, err := svc.CreateAccount(ctx, request_models.SignUpRequest{
		DisplayName: "Ana",
		Email:       "Ana@Example.com",
		Password:    "secret123",
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if identity.Email != "ana@example.com" || identity.Role != RoleUser {
		t.Errorf("identity = %+v", identity)
	}
	if repo.byEmail["ana@example.com"].PasswordHash == "secret123" {
		t.Error("password stored in clear text")
	}

	token, loggedIn, err := svc.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.UserID != identity.UserID {
		t.Errorf("login identity = %+v", loggedIn)
	}

	parsed, err := signer.ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("session token invalid: %v", err)
	}
	if parsed.Email != "ana@example.com" || parsed.Role != RoleUser {
		t.Errorf("claims = %+v", parsed)
	}
}

func TestAccountService_Errors(t *testing.T) {
	repo := newMemAccountRepo()
	svc, _ := newTestAccountService(repo)
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, request_models.SignUpRequest{Email: "a@b.io", Password: "secret123"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"duplicate email", func() error {
			_, err := svc.CreateAccount(ctx, request_models.SignUpRequest{Email: "A@b.io", Password: "other123"})
			return err
		}, utils.ErrEmailAlreadyExists},
		{"unknown account", func() error {
			_, _, err := svc.Login(ctx, request_models.LoginRequest{Email: "x@b.io", Password: "secret123"})
			return err
		}, utils.ErrAccountNotFound},
		{"wrong password", func() error {
			_, _, err := svc.Login(ctx, request_models.LoginRequest{Email: "a@b.io", Password: "nope1234"})
			return err
		}, utils.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	repo.err = errors.New("connection reset")
	if _, _, err := svc.Login(ctx, request_models.LoginRequest{Email: "a@b.io", Password: "secret123"}); !errors.Is(err, utils.ErrDatabaseError) {
		t.Errorf("err = %v, want ErrDatabaseError", err)
	}
}

func TestAccountService_Verify(t *testing.T) {
	repo := newMemAccountRepo()
	svc, _ := newTestAccountService(repo)
	ctx := context.Background()

	admin, err := svc.CreateAccount(ctx, request_models.SignUpRequest{Email: "boss@admin.com", Password: "secret123"})
	if err != nil {
		t.Fatal(err)
	}
	if admin.Role != RoleAdmin {
		t.Fatalf("role = %q", admin.Role)
	}

	res, err := svc.Verify(ctx, admin)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.Authenticated || !res.User.IsAdmin || res.User.UID != admin.UserID.String() {
		t.Errorf("verify = %+v", res)
	}

	stranger := &utils.Identity{UserID: uuid.New(), Email: "ghost@x.io"}
	if _, err := svc.Verify(ctx, stranger); !errors.Is(err, utils.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Verify(ctx, nil); !errors.Is(err, utils.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}
