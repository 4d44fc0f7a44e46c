package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"zenjourney/cmd/fx/account_fx"
	"zenjourney/cmd/fx/analytics_fx"
	"zenjourney/cmd/fx/config_fx"
	"zenjourney/cmd/fx/controllers_fx"
	"zenjourney/cmd/fx/db_fx"
	"zenjourney/cmd/fx/memcache_fx"
	"zenjourney/cmd/fx/plan_fx"
	"zenjourney/cmd/fx/voice_fx"
	"zenjourney/internal/api/controllers"
	"zenjourney/internal/config"
	"zenjourney/internal/services"
	"zenjourney/internal/web"
	"zenjourney/pkg/middleware"
)

// Per-IP limits for POST /voice/speech.
const (
	speechInterval = 3 * time.Second
	speechBurst    = 10
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		plan_fx.Module,
		analytics_fx.Module,
		voice_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(engine),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("HTTP server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	log *zap.Logger,
	sessions middleware.SessionValidator,
	pageController *controllers.PageController,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	voiceController *controllers.VoiceController,
	adminController *controllers.AdminController) *gin.Engine {

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(gin.Recovery())
	r.Use(middleware.SessionMiddleware(sessions))

	r.StaticFS("/static", web.StaticFS())

	RegisterRoutes(r, pageController, accountController, planController, voiceController, adminController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	pageController *controllers.PageController,
	accountController *controllers.AccountController,
	planController *controllers.PlanController,
	voiceController *controllers.VoiceController,
	adminController *controllers.AdminController) {

	speechLimiter := middleware.NewRateLimiter(speechInterval, speechBurst, 15*time.Minute)

	r.GET("/", pageController.Landing)
	r.GET("/about", pageController.About)
	r.GET("/healthz", pageController.Healthz)
	r.NoRoute(pageController.NotFound)

	r.GET("/login", accountController.LoginPage)
	r.POST("/login", accountController.Login)
	r.GET("/register", accountController.RegisterPage)
	r.POST("/register", accountController.Register)
	r.POST("/logout", accountController.Logout)

	r.POST("/search", planController.QuickSearch)
	planGroup := r.Group("/plan")
	planGroup.GET("", planController.NewScreen)
	planGroup.GET("/:screen", planController.Show)
	planGroup.POST("/:screen", planController.Submit)

	r.GET("/voice-agent", voiceController.Page)
	voiceGroup := r.Group("/voice")
	voiceGroup.GET("/ws", voiceController.Socket)
	voiceGroup.POST("/speech", speechLimiter.Middleware(), voiceController.Speak)
	voiceGroup.GET("/speech/:id", voiceController.Clip)

	r.GET("/admin", middleware.RequireSession("/login"), adminController.Dashboard)

	apiGroup := r.Group("/api")
	apiGroup.GET("/auth/verify", accountController.Verify)

	adminGroup := apiGroup.Group("/admin")
	adminGroup.Use(middleware.RequireSessionAPI(), middleware.RoleMiddleware(services.RoleAdmin))
	adminGroup.GET("/analytics", adminController.GetAnalytics)
}
