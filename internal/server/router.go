package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/health-record-api/internal/config"
	"github.com/harentsoaR/health-record-api/internal/handlers"
	"github.com/harentsoaR/health-record-api/internal/middleware"
)

// NewRouter wires middleware and every route onto a gin engine.
func NewRouter(cfg config.Config, h *handlers.Handler) (*gin.Engine, error) {
	r := gin.New()
	// client IPs feed the auth rate limiter, so X-Forwarded-For is only
	// read from the configured proxies
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = cfg.Storage.MaxUploadBytes

	// ---  Middleware ---
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Storage.Backend == config.StorageLocal {
		r.Static("/uploads", cfg.Storage.UploadDir)
	}

	limiter := middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	// --- Routes ---
	api := r.Group("/api")
	{
		api.POST("/register", limiter, h.RegisterUser)
		api.POST("/login", limiter, h.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(h.JWTSecret))
	{
		protected.GET("/user-profile", h.GetUserProfile)
		protected.PUT("/update-profile", h.UpdateUserProfile)

		protected.POST("/save-page", h.SavePage)
		protected.GET("/my-saved-pages", h.GetSavedPages)
		protected.DELETE("/my-saved-pages/:id", h.DeleteSavedPage)

		protected.POST("/news", h.AddNews)
		protected.GET("/news", h.GetNews)
		protected.DELETE("/news/:id", h.DeleteNews)

		protected.POST("/appointments", h.AddAppointment)
		protected.GET("/appointments", h.GetAppointments)
		protected.DELETE("/appointments/:id", h.DeleteAppointment)
	}

	return r, nil
}
