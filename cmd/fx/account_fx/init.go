package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zenjourney/internal/config"
	"zenjourney/internal/repositories"
	"zenjourney/internal/services"
	"zenjourney/pkg/middleware"
	"zenjourney/pkg/utils"
)

var Module = fx.Provide(
	provideTokenSigner, provideSessionValidator, provideAccountRepo, provideAccountService)

func provideTokenSigner(cfg *config.Config) *utils.TokenSigner {
	return utils.NewTokenSigner(cfg.JWT.Secret, cfg.JWT.SessionTTL, cfg.JWT.BearerTTL)
}

func provideSessionValidator(signer *utils.TokenSigner) middleware.SessionValidator {
	return signer
}

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository, signer *utils.TokenSigner, cfg *config.Config, log *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, signer, cfg.Admin.EmailDomain, log.Named("account"))
}
