package db_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zenjourney/internal/config"
	"zenjourney/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideDB),
	fx.Invoke(infra.RegisterPostgresLifecycle),
)

func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	return infra.InitPostgresql(cfg.Database, log)
}
