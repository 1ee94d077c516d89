package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type Handlers struct {
	Auth      *AuthHandler
	Account   *AccountHandler
	Skill     *SkillHandler
	Portfolio *PortfolioHandler
	Message   *MessageHandler
	Showcase  *ShowcaseHandler
}

type RouterConfig struct {
	JWT            *auth.JWTService
	Revoker        service.TokenRevoker
	MessageLimiter RateLimiter // nil disables rate limiting
	AllowedOrigins []string
	TrustedProxies []string // empty trusts no proxy headers
	MaxUploadBytes int64
	Logger         logger.Logger
}

func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		cfg.Logger.Error("Invalid trusted proxies, ignoring forwarded headers", err, zap.Strings("proxies", cfg.TrustedProxies))
		_ = router.SetTrustedProxies(nil)
	}
	router.MaxMultipartMemory = cfg.MaxUploadBytes + 1<<20

	router.Use(
		gin.Recovery(),
		CorrelationIDMiddleware(),
		RequestLoggerMiddleware(cfg.Logger),
		MetricsMiddleware(),
		cors.New(corsConfig(cfg.AllowedOrigins)),
		ErrorMiddleware(cfg.Logger),
		BodyLimitMiddleware(cfg.MaxUploadBytes),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := AuthMiddleware(cfg.JWT, cfg.Revoker, cfg.Logger)

	submit := []gin.HandlerFunc{h.Message.Submit}
	if cfg.MessageLimiter != nil {
		submit = append([]gin.HandlerFunc{RateLimitMiddleware(cfg.MessageLimiter, cfg.Logger)}, submit...)
	}

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/login", h.Auth.Login)
			users.POST("/logout", authMiddleware, h.Auth.Logout)
			users.GET("/me", authMiddleware, h.Auth.Me)
		}

		// Public
		api.GET("/info", h.Showcase.GetInfo)
		api.GET("/skills", h.Showcase.ListSkills)
		api.GET("/projects", h.Showcase.ListProjects)
		api.GET("/projects/feed.xml", h.Showcase.Feed)
		api.POST("/messages", submit...)
		api.POST("/admin/messages", submit...)

		admin := api.Group("/admin", authMiddleware)
		{
			admin.GET("/info", h.Account.Get)
			admin.PUT("/info", h.Account.Update)

			skills := admin.Group("/skills")
			{
				skills.GET("", h.Skill.List)
				skills.POST("", h.Skill.Create)
				skills.PUT("/:id", h.Skill.Update)
				skills.DELETE("/:id", h.Skill.Delete)
			}

			projects := admin.Group("/projects")
			{
				projects.GET("", h.Portfolio.List)
				projects.POST("", h.Portfolio.Create)
				projects.GET("/:id", h.Portfolio.Get)
				projects.PUT("/:id", h.Portfolio.Update)
				projects.DELETE("/:id", h.Portfolio.Delete)
			}

			messages := admin.Group("/messages")
			{
				messages.GET("", h.Message.List)
				messages.PUT("/:id", h.Message.SetRead)
				messages.DELETE("/:id", h.Message.Delete)
			}
		}
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	conf := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", HeaderCorrelationID},
		ExposeHeaders: []string{HeaderCorrelationID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		conf.AllowAllOrigins = true
		return conf
	}
	conf.AllowOrigins = origins
	conf.AllowCredentials = true
	return conf
}
