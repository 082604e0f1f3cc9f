package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "pet_discovery/docs"
	"pet_discovery/internal/config"
	"pet_discovery/internal/handlers"
	"pet_discovery/internal/logger"
	"pet_discovery/internal/repository"
	"pet_discovery/internal/repository/db"
	"pet_discovery/internal/server"
	"pet_discovery/internal/service"

	"github.com/redis/go-redis/v9"
)

const (
	reapTick     = time.Minute
	redisTimeout = 3 * time.Second
)

// @title                       Pet Discovery API
// @version                     1.0
// @description                 Location-based discovery of pet-care companies.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	cache, closeCache := openCache(cfg.Redis, log)
	defer closeCache()

	// wire dependencies
	repos := repository.NewRepository(sqlDB, cache, cfg.Redis.TTL)
	services := service.NewService(repos, service.Options{
		PageSize:    cfg.Discovery.PageSize,
		SessionIdle: cfg.Discovery.SessionIdle,
		SigningKey:  cfg.Auth.SigningKey,
		TokenTTL:    cfg.Auth.TokenTTL,
		Logger:      log,
	})
	apiHandler := handlers.NewHandler(services, log, cfg.WS.AllowedOrigins...)

	if cfg.Auth.SigningKey == "" {
		log.Warnw("auth.signing_key is empty; admin endpoints will reject every token")
	}

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Reaper.Run(ctx, reapTick)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

// openCache connects the company snapshot cache when redis.addr is set.
// A failing ping disables the cache instead of failing startup.
func openCache(cfg config.RedisConfig, log *logger.Logger) (repository.SnapshotCache, func()) {
	noop := func() {}
	if cfg.Addr == "" {
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	cache, err := repository.DialRedisCache(ctx, &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		log.Warnw("redis unavailable; company cache disabled", "addr", cfg.Addr, "err", err)
		return nil, noop
	}
	log.Infow("company cache enabled", "addr", cfg.Addr, "ttl", cfg.TTL.String())
	return cache, func() { _ = cache.Close() }
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
