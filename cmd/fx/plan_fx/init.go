package plan_fx

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"zenjourney/internal/config"
	"zenjourney/internal/services"
	mem "zenjourney/pkg/memcache"
	"zenjourney/pkg/utils"
)

var Module = fx.Provide(provideHTTPClient, providePlanClient, providePlanService)

// provideHTTPClient is shared by the planner and voice clients. Per-call
// deadlines come from their contexts.
func provideHTTPClient() *http.Client {
	return &http.Client{Transport: http.DefaultTransport}
}

func providePlanClient(cfg *config.Config, httpClient *http.Client, log *zap.Logger) services.PlanClientInterface {
	return services.NewPlanClient(cfg.Planner.URL, cfg.Planner.Timeout, httpClient, log.Named("planner"))
}

func providePlanService(client services.PlanClientInterface, screens *mem.Store[*services.PlanScreen], signer *utils.TokenSigner, log *zap.Logger) services.PlanServiceInterface {
	return services.NewPlanService(client, screens, signer, log.Named("plan"))
}
