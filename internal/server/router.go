// Package server assembles services, handlers and middleware into the HTTP
// router.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/nuuxixv/MindConnect/internal/config"
	"github.com/nuuxixv/MindConnect/internal/database"
	"github.com/nuuxixv/MindConnect/internal/handlers"
	"github.com/nuuxixv/MindConnect/internal/logging"
	"github.com/nuuxixv/MindConnect/internal/metrics"
	"github.com/nuuxixv/MindConnect/internal/middleware"
	"github.com/nuuxixv/MindConnect/internal/services"
	"github.com/nuuxixv/MindConnect/internal/ws"

	_ "github.com/nuuxixv/MindConnect/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// App is the assembled HTTP application.
type App struct {
	Engine   *gin.Engine
	Sessions *services.SessionStore
	Hub      *ws.Hub
}

type Options struct {
	// Registry receives the service metrics and backs /metrics. A fresh
	// registry is used when nil.
	Registry *prometheus.Registry
	// HTTPClient is used for identity provider calls.
	HTTPClient *http.Client
}

func New(cfg *config.Config, db *gorm.DB, log *slog.Logger, opts Options) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := metrics.New(reg)

	catalog, err := database.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	sessions := services.NewSessionStore(db, cfg.SessionTTL)
	authService := services.NewAuthService(db, sessions, cfg.SessionSecret, cfg.LocalTTL)
	assessment, err := services.NewAssessmentService(db, services.AssessmentOptions{
		StrictQuestions: cfg.StrictAnswers,
		CacheSize:       cfg.CatalogCache,
		Metrics:         m,
		Logger:          logging.Component(log, "assessment"),
	})
	if err != nil {
		return nil, err
	}
	profiles := services.NewProfileService(db)
	community := services.NewCommunityService(db)

	var (
		oidc      *services.OIDCProvider
		refresher services.TokenRefresher
	)
	if cfg.OIDC.Enabled() {
		oidc = services.NewOIDCProvider(cfg.OIDC, opts.HTTPClient)
		refresher = oidc
	}
	guard := services.NewSessionGuard(refresher, sessions, cfg.RefreshTimeout, m, logging.Component(log, "session"))
	hub := ws.NewHub(logging.Component(log, "ws"))

	handlers.RegisterValidation()
	httpLog := logging.Component(log, "http")
	authHandler := handlers.NewAuthHandler(authService, oidc, cfg.SecureCookies, httpLog)
	testHandler := handlers.NewTestHandler(assessment, httpLog)
	resultHandler := handlers.NewResultHandler(assessment, httpLog)
	profileHandler := handlers.NewProfileHandler(profiles, httpLog)
	communityHandler := handlers.NewCommunityHandler(community, hub, httpLog)
	wsHandler := handlers.NewWSHandler(hub, httpLog)
	seedHandler := handlers.NewSeedHandler(db, catalog, assessment, httpLog)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(httpLog))
	r.Use(middleware.Metrics(m))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/health", health(db))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/posts/:id", wsHandler.PostStream)

	requireSession := middleware.SessionAuth(authService, guard, logging.Component(log, "auth"))

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/login", authHandler.BeginLogin)
		api.GET("/callback", authHandler.Callback)
		api.GET("/logout", authHandler.Logout)
		api.GET("/auth/user", requireSession, authHandler.CurrentUser)

		api.GET("/tests", testHandler.ListTests)
		api.GET("/tests/:id", testHandler.GetTest)
		api.POST("/tests/:id/submit", requireSession, testHandler.SubmitTest)

		results := api.Group("/results")
		results.Use(requireSession)
		{
			results.GET("", resultHandler.ListResults)
			results.GET("/:id", resultHandler.GetResult)
		}

		profilesGroup := api.Group("/profiles")
		profilesGroup.Use(requireSession)
		{
			profilesGroup.GET("", profileHandler.ListProfiles)
			profilesGroup.POST("", profileHandler.CreateProfile)
			profilesGroup.DELETE("/:id", profileHandler.DeleteProfile)
		}

		api.GET("/posts", communityHandler.ListPosts)
		api.GET("/posts/:id", communityHandler.GetPost)
		api.POST("/posts", requireSession, communityHandler.CreatePost)
		api.POST("/posts/:id/comments", requireSession, communityHandler.CreateComment)

		if cfg.EnableSeed {
			api.POST("/seed", seedHandler.Seed)
		}
	}

	return &App{Engine: r, Sessions: sessions, Hub: hub}, nil
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": fmt.Sprint(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// corsConfig allows credentialed requests from the configured origins. A "*"
// entry echoes the caller's origin instead of sending a literal wildcard,
// which browsers refuse together with cookies.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowOriginFunc = func(string) bool { return true }
		return c
	}
	c.AllowOrigins = origins
	return c
}
