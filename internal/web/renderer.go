package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zenjourney/pkg/middleware"
	"zenjourney/pkg/utils"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	baseTemplate *template.Template
	log          *zap.Logger
}

// PageData is handed to every page template.
type PageData struct {
	Title       string
	CurrentPath string
	User        *utils.Identity
	Flash       *Flash
	// RefreshSeconds makes the page reload itself while work is pending.
	RefreshSeconds int
	Data           any
}

type Flash struct {
	Type    string // "error", "info"
	Message string
}

func NewRenderer(log *zap.Logger) (*Renderer, error) {
	base, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}
	return &Renderer{baseTemplate: base, log: log}, nil
}

// Render writes page name with status. The base template is cloned per call so
// each page can define its own "content" block.
func (r *Renderer) Render(c *gin.Context, status int, name string, page PageData) {
	page.CurrentPath = c.Request.URL.Path
	page.User = middleware.CurrentIdentity(c)

	tmpl, err := r.baseTemplate.Clone()
	if err != nil {
		r.fail(c, fmt.Errorf("clone template: %w", err))
		return
	}
	if _, err := tmpl.ParseFS(templatesFS, "templates/"+name); err != nil {
		r.fail(c, fmt.Errorf("parse page template %s: %w", name, err))
		return
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(c.Writer, "base", page); err != nil {
		r.log.Error("render page", zap.String("page", name), zap.Error(err))
	}
}

func (r *Renderer) fail(c *gin.Context, err error) {
	r.log.Error("render page", zap.String("trace_id", utils.TraceID(c)), zap.Error(err))
	c.String(http.StatusInternalServerError, "Internal Server Error")
}

// StaticFS serves the page scripts under /static.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
