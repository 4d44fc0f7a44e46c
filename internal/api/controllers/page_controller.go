package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenjourney/internal/web"
)

type PageController struct {
	renderer *web.Renderer
}

func NewPageController(renderer *web.Renderer) *PageController {
	return &PageController{renderer: renderer}
}

func (p *PageController) Landing(c *gin.Context) {
	p.renderer.Render(c, http.StatusOK, "landing.html", web.PageData{Title: "ZenJourney"})
}

func (p *PageController) About(c *gin.Context) {
	p.renderer.Render(c, http.StatusOK, "about.html", web.PageData{Title: "About"})
}

func (p *PageController) NotFound(c *gin.Context) {
	p.renderer.Render(c, http.StatusNotFound, "error.html", web.PageData{
		Title: "Page not found",
		Data:  "The page you are looking for does not exist.",
	})
}

// Healthz godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (p *PageController) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
