package controllers_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"zenjourney/internal/api/controllers"
	"zenjourney/internal/config"
	"zenjourney/internal/services"
	"zenjourney/internal/web"
	"zenjourney/pkg/middleware"
)

var Module = fx.Options(
	fx.Provide(web.NewRenderer),
	fx.Provide(controllers.NewPageController),
	fx.Provide(provideAccountController),
	fx.Provide(controllers.NewPlanController),
	fx.Provide(provideVoiceController),
	fx.Provide(controllers.NewAdminController))

func provideAccountController(
	accountService services.AccountServiceInterface,
	renderer *web.Renderer,
	limiter *middleware.RateLimiter,
	cfg *config.Config,
	log *zap.Logger,
) *controllers.AccountController {
	return controllers.NewAccountController(accountService, renderer, limiter,
		int(cfg.JWT.SessionTTL.Seconds()), cfg.Server.SecureCookies, log.Named("account"))
}

func provideVoiceController(
	voiceService services.VoiceServiceInterface,
	speaker services.Synthesizer,
	renderer *web.Renderer,
	cfg *config.Config,
	log *zap.Logger,
) *controllers.VoiceController {
	return controllers.NewVoiceController(voiceService, speaker, renderer, cfg.CORS.AllowedOrigins, log.Named("voice"))
}
