package memcache_fx

import (
	"time"

	"go.uber.org/fx"

	"zenjourney/internal/config"
	"zenjourney/internal/services"
	mem "zenjourney/pkg/memcache"
	"zenjourney/pkg/middleware"
)

const (
	clipTTL        = 10 * time.Minute
	loginInterval  = 12 * time.Second
	loginBurst     = 5
	limiterIdleTTL = 15 * time.Minute
)

var Module = fx.Provide(provideScreenStore, provideClipStore, provideLoginLimiter)

func provideScreenStore(cfg *config.Config) *mem.Store[*services.PlanScreen] {
	return mem.NewStore[*services.PlanScreen](cfg.Server.ScreenIdleTTL, cfg.Server.ScreenIdleTTL/2)
}

func provideClipStore() *mem.Store[[]byte] {
	return mem.NewStore[[]byte](clipTTL, clipTTL)
}

func provideLoginLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(loginInterval, loginBurst, limiterIdleTTL)
}
