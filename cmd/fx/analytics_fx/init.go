package analytics_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zenjourney/internal/repositories"
	"zenjourney/internal/services"
)

var Module = fx.Provide(
	provideVoiceCallRepo, provideAnalyticsService,
)

func provideVoiceCallRepo(db *gorm.DB) repositories.VoiceCallRepository {
	return repositories.NewVoiceCallRepository(db)
}

func provideAnalyticsService(repo repositories.VoiceCallRepository, log *zap.Logger) services.AnalyticsServiceInterface {
	return services.NewAnalyticsService(repo, log.Named("analytics"))
}
