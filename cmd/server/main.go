package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"practicehub/internal/cache"
	"practicehub/internal/repository"
	"practicehub/internal/server"
	"practicehub/internal/service"
	"practicehub/pkg/utils/logger"

	"go.uber.org/zap"
)

const defaultConfigPath = "configs/server.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	flag.Parse()

	appCfg, err := loadAppConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load app config failed: %v\n", err)
		return
	}

	if err := logger.Init(appCfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return
	}
	defer func() { _ = logger.Sync() }()

	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()

	store, err := repository.Connect(initCtx, appCfg.Mongo)
	if err != nil {
		logger.Error(context.Background(), "connect document store failed", zap.Error(err))
		return
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error(context.Background(), "close document store failed", zap.Error(err))
		}
	}()

	if err := store.EnsureIndexes(initCtx); err != nil {
		logger.Error(context.Background(), "ensure indexes failed", zap.Error(err))
		return
	}

	var redisCache *cache.RedisCache
	if appCfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(initCtx, appCfg.Redis.RedisConfig)
		if err != nil {
			logger.Error(context.Background(), "init redis failed", zap.Error(err))
			return
		}
		defer func() { _ = redisCache.Close() }()
	}

	problemRepo := repository.NewProblemRepository(store)
	userRepo := repository.NewUserRepository(store)

	authService := service.NewAuthService(appCfg.Auth.JWTSecret, appCfg.Auth.JWTIssuer, appCfg.Auth.TokenTTL)

	var limiter *service.LoginLimiter
	var statsCache cache.BasicOps
	if redisCache != nil {
		limiter = service.NewLoginLimiter(redisCache, appCfg.Limiter.FailLimit, appCfg.Limiter.FailWindow)
		statsCache = redisCache
	}

	deps := server.Deps{
		Auth:     authService,
		Problems: service.NewProblemService(problemRepo, userRepo),
		Users:    service.NewUserService(userRepo, authService, limiter),
		Stats:    service.NewStatsService(problemRepo, userRepo, statsCache, appCfg.Stats.CacheTTL),
		CORS:     appCfg.CORS,
	}

	httpServer := &http.Server{
		Addr:         appCfg.Server.Addr,
		Handler:      server.NewRouter(deps),
		ReadTimeout:  appCfg.Server.ReadTimeout,
		WriteTimeout: appCfg.Server.WriteTimeout,
		IdleTimeout:  appCfg.Server.IdleTimeout,
	}

	listener, err := net.Listen("tcp", appCfg.Server.Addr)
	if err != nil {
		logger.Error(context.Background(), "init http listener failed", zap.Error(err))
		return
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(context.Background(), "http server started", zap.String("addr", appCfg.Server.Addr))
		errCh <- httpServer.Serve(listener)
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "http server stopped", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		logger.Info(context.Background(), "shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error(context.Background(), "http server shutdown failed", zap.Error(err))
	}
}
