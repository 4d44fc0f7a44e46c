package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"zenjourney/internal/models/db_models"
	"zenjourney/internal/models/request_models"
	resp "zenjourney/internal/models/response_models"
	"zenjourney/internal/repositories"
	"zenjourney/pkg/utils"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// SessionSigner issues the value of the session cookie.
type SessionSigner interface {
	CreateSessionToken(id utils.Identity) (string, error)
}

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (string, *utils.Identity, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*utils.Identity, error)
	Verify(ctx context.Context, identity *utils.Identity) (*resp.VerifyResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	signer      SessionSigner
	adminDomain string
	log         *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, signer SessionSigner, adminDomain string, log *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		signer:      signer,
		adminDomain: strings.ToLower(adminDomain),
		log:         log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RoleForEmail grants the admin role to addresses in the configured admin domain.
func RoleForEmail(email, adminDomain string) string {
	if adminDomain != "" && strings.HasSuffix(normalizeEmail(email), strings.ToLower(adminDomain)) {
		return RoleAdmin
	}
	return RoleUser
}

func identityOf(account *db_models.Account) *utils.Identity {
	return &utils.Identity{UserID: account.ID, Email: account.Email, Role: account.Role}
}

// Login checks the credentials and returns a signed session token.
func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, *utils.Identity, error) {
	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		a.log.Error("account lookup failed", zap.Error(err))
		return "", nil, utils.ErrDatabaseError
	}
	if account == nil {
		return "", nil, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return "", nil, utils.ErrInvalidCredentials
	}

	identity := identityOf(account)
	token, err := a.signer.CreateSessionToken(*identity)
	if err != nil {
		a.log.Error("failed to sign session", zap.Error(err))
		return "", nil, utils.ErrInvalidCredentials
	}

	a.log.Info("login succeeded",
		zap.String("account", account.ID.String()),
		zap.Duration("elapsed", time.Since(startTime)))

	return token, identity, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*utils.Identity, error) {
	email := normalizeEmail(request.Email)

	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.log.Error("account lookup failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         strings.TrimSpace(request.DisplayName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         RoleForEmail(email, a.adminDomain),
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		a.log.Error("failed to insert account", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return identityOf(newAccount), nil
}

// Verify confirms that the session's account still exists.
func (a *AccountService) Verify(ctx context.Context, identity *utils.Identity) (*resp.VerifyResponse, error) {
	if identity == nil || identity.UserID == uuid.Nil {
		return nil, utils.ErrUnauthorized
	}

	account, err := a.accountRepo.FindById(ctx, identity.UserID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrUnauthorized
	}

	return &resp.VerifyResponse{
		Authenticated: true,
		User: resp.SessionUser{
			UID:     account.ID.String(),
			Email:   account.Email,
			IsAdmin: identity.IsAdmin(),
		},
	}, nil
}
