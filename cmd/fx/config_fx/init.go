package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"zenjourney/internal/config"
	"zenjourney/internal/infra"
)

var Module = fx.Options(
	fx.Provide(config.Load, provideLogger),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return infra.NewLogger(cfg.Log)
}
