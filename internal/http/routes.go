package http

import (
	"time"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/http/handlers"
	"tavern_bot/internal/http/middleware"
	"tavern_bot/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Limits struct {
	APIRequests  int
	APIWindow    time.Duration
	AuthRequests int
	AuthWindow   time.Duration
}

type Options struct {
	Handler       *handlers.Handler
	Health        *handlers.HealthHandler
	Hub           *ws.Hub
	Limiter       *middleware.RateLimiter
	Limits        Limits
	AllowedOrigin string
	// StaticDir holds the dashboard front end; empty disables static serving.
	StaticDir string
}

func RegisterRoutes(r *gin.Engine, opts Options) {
	h := opts.Handler

	r.Use(middleware.RequestLogger(), middleware.CORS(opts.AllowedOrigin))

	// Health checks (no rate limiting)
	r.GET("/health", opts.Health.Health)
	r.GET("/healthz", opts.Health.Liveness)
	r.GET("/readyz", opts.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	session := middleware.Session(h.Tokens)
	authRL := opts.Limiter.PerIP(opts.Limits.AuthRequests, opts.Limits.AuthWindow)

	auth := r.Group("/auth")
	{
		auth.GET("/discord", authRL, h.Login)
		auth.GET("/discord/callback", authRL, h.Callback)
		auth.GET("/logout", h.Logout)
		auth.GET("/me", session, h.AuthMe)
	}

	api := r.Group("/api")
	api.Use(opts.Limiter.PerIP(opts.Limits.APIRequests, opts.Limits.APIWindow), session)
	{
		api.GET("/ranking/chat", h.Ranking(domain.RankingChat))
		api.GET("/ranking/voice", h.Ranking(domain.RankingVoice))
		api.GET("/shop", h.Shop)
		api.GET("/stats/overview", h.Overview)
		api.GET("/bot/status", h.BotStatus)

		userRL := opts.Limiter.PerUser(opts.Limits.APIRequests, opts.Limits.APIWindow)

		me := api.Group("/me", middleware.RequireSession(), userRL)
		{
			me.GET("/stats", h.MyStats)
			me.GET("/inventory", h.MyInventory)
			me.GET("/memes", h.MyMemes)
			me.GET("/history", h.MyHistory)
		}

		admin := api.Group("/admin", middleware.RequireSession(), userRL)
		{
			admin.POST("/buffs", h.GrantBuff)
			admin.POST("/balance", h.AddBalance)
		}
	}

	// live economy feed
	r.GET("/ws", h.WS(opts.Hub, opts.AllowedOrigin))

	if opts.StaticDir != "" {
		r.Static("/assets", opts.StaticDir+"/assets")
		r.NoRoute(func(c *gin.Context) {
			c.File(opts.StaticDir + "/index.html")
		})
	}
}
