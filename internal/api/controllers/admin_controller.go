package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zenjourney/internal/services"
	"zenjourney/internal/web"
	"zenjourney/pkg/middleware"
	"zenjourney/pkg/utils"
)

type AdminController struct {
	analyticsService services.AnalyticsServiceInterface
	renderer         *web.Renderer
	log              *zap.Logger
}

func NewAdminController(analyticsService services.AnalyticsServiceInterface, renderer *web.Renderer, log *zap.Logger) *AdminController {
	return &AdminController{
		analyticsService: analyticsService,
		renderer:         renderer,
		log:              log,
	}
}

// Dashboard renders the analytics page. Signed-in users without the admin
// role get an access denied page.
func (a *AdminController) Dashboard(c *gin.Context) {
	if !middleware.CurrentIdentity(c).IsAdmin() {
		a.renderer.Render(c, http.StatusForbidden, "error.html", web.PageData{
			Title: "Access denied",
			Data:  "You need an administrator account to view this page.",
		})
		return
	}

	analytics, err := a.analyticsService.BuildAnalytics(c.Request.Context())
	if err != nil {
		a.log.Error("build analytics", zap.String("trace_id", utils.TraceID(c)), zap.Error(err))
		a.renderer.Render(c, http.StatusInternalServerError, "error.html", web.PageData{
			Title: "Dashboard unavailable",
			Data:  "Failed to load analytics. Please try again later.",
		})
		return
	}

	a.renderer.Render(c, http.StatusOK, "admin.html", web.PageData{
		Title: "Admin Dashboard",
		Data:  analytics,
	})
}

// GetAnalytics godoc
// @Summary Get voice analytics
// @Description Total voice calls, average call duration in minutes and the most common questions
// @Tags Admin
// @Produce json
// @Success 200 {object} response_models.Analytics
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/admin/analytics [get]
func (a *AdminController) GetAnalytics(c *gin.Context) {
	analytics, err := a.analyticsService.BuildAnalytics(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}
