package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tavern_bot/internal/bot"
	"tavern_bot/internal/cache"
	"tavern_bot/internal/config"
	"tavern_bot/internal/db"
	httpServer "tavern_bot/internal/http"
	"tavern_bot/internal/http/handlers"
	"tavern_bot/internal/http/middleware"
	"tavern_bot/internal/logger"
	"tavern_bot/internal/repository"
	"tavern_bot/internal/repository/memory"
	"tavern_bot/internal/service"
	"tavern_bot/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", "error", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.Info("starting tavern bot", "version", cfg.App.Version, "env", cfg.App.Environment, "store", cfg.App.StoreDriver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("open store", "error", err)
	}
	defer store.Close()

	rdb := middleware.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	var kv cache.Cache
	if rdb != nil {
		defer rdb.Close()
		kv = cache.NewRedisCache(rdb, cfg.Redis.Prefix)
	} else {
		kv = cache.NewMemoryCache(time.Minute)
	}
	defer kv.Close()

	hub := ws.NewHub()
	go hub.Run(ctx)

	economy := service.NewEconomyService(store, service.EconomyOptions{
		DailyReward: cfg.Economy.DailyReward,
		MaxBet:      cfg.Economy.MaxBet,
		Events:      hub,
	})
	memes := service.NewMemeService(store.Memes())
	activity := service.NewActivityService(store, kv, nil)
	admin := service.NewAdminService(store, economy, cfg.Discord.AdminIDs)

	discord, err := bot.New(cfg.Discord.Token, bot.NewRouter(economy, memes), activity, bot.Options{
		AppID:           cfg.Discord.ClientID,
		GuildID:         cfg.Discord.GuildID,
		RegisterOnStart: cfg.Discord.ClientID != "",
		StatusInterval:  cfg.Discord.StatusInterval,
		Version:         cfg.App.Version,
		UpdateChannelID: cfg.Discord.UpdateChannelID,
		Releases:        service.NewReleaseTracker(kv),
	})
	if err != nil {
		logger.Fatal("create bot", "error", err)
	}
	activity.SetProfileLookup(discord)
	if err := discord.Start(); err != nil {
		logger.Fatal("start bot", "error", err)
	}

	var srv *http.Server
	if cfg.Dashboard.Enabled {
		srv = newDashboard(cfg, store, rdb, hub, economy, memes, activity, admin, discord)
		go func() {
			logger.Info("dashboard started", "port", cfg.Dashboard.Port, "url", cfg.Dashboard.URL)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("listen", "error", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Dashboard.ShutdownTimeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("dashboard forced to shutdown", "error", err)
		}
		shutdownCancel()
	}
	discord.Stop()
	cancel()

	logger.Info("shutdown complete")
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.App.StoreDriver == "memory" {
		logger.Warn("using in-memory store, data is lost on restart")
		return memory.New(cfg.Economy.StartingBalance), nil
	}

	pool, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return repository.NewPostgresStore(pool, cfg.Economy.StartingBalance), nil
}

func newDashboard(cfg *config.Config, store repository.Store, rdb *redis.Client, hub *ws.Hub,
	economy *service.EconomyService, memes *service.MemeService, activity *service.ActivityService,
	admin *service.AdminService, discord *bot.Bot) *http.Server {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens := service.NewTokenService(cfg.Dashboard.JWTSecret, cfg.Dashboard.SessionTTL)
	oauth := service.NewDiscordOAuth(cfg.Discord.ClientID, cfg.Dashboard.ClientSecret, cfg.Dashboard.CallbackURL())
	h := handlers.NewHandler(economy, memes, activity, admin, tokens, oauth, discord, handlers.HandlerConfig{
		StateSecret:   cfg.Dashboard.JWTSecret,
		SecureCookies: cfg.App.IsProduction(),
	})

	extra := map[string]handlers.Pinger{}
	if rdb != nil {
		extra["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	r := gin.New()
	r.Use(gin.Recovery())
	httpServer.RegisterRoutes(r, httpServer.Options{
		Handler: h,
		Health:  handlers.NewHealthHandler(store, extra, cfg.App.Version),
		Hub:     hub,
		Limiter: middleware.NewRateLimiter(rdb, cfg.Redis.Prefix),
		Limits: httpServer.Limits{
			APIRequests:  cfg.Dashboard.APIRateLimit,
			APIWindow:    cfg.Dashboard.APIRateWindow,
			AuthRequests: cfg.Dashboard.AuthRateLimit,
			AuthWindow:   cfg.Dashboard.AuthRateWindow,
		},
		AllowedOrigin: cfg.Dashboard.AllowedOrigin,
		StaticDir:     cfg.Dashboard.StaticDir,
	})

	return &http.Server{
		Addr:              ":" + cfg.Dashboard.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
