package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/user-service/internal/config"
	"github.com/msomdec/user-service/internal/domain"
	"github.com/msomdec/user-service/internal/handler"
	"github.com/msomdec/user-service/internal/repository/memory"
	"github.com/msomdec/user-service/internal/repository/sqlite"
	"github.com/msomdec/user-service/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadEnv(ctx, os.Environ())
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	users, closeStore, err := openUserRepository(ctx, cfg)
	if err != nil {
		slog.Error("failed to open user store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("user store ready", "store", cfg.Store)

	var limiter *service.TokenBucket
	if cfg.CreateRate > 0 {
		limiter = service.NewTokenBucket(ctx, cfg.CreateRate, cfg.CreateBurst)
	}

	userService := service.NewUserService(users)

	var routerOpts []handler.RouterOption
	if cfg.TrustProxy {
		routerOpts = append(routerOpts, handler.WithTrustedProxy())
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.NewRouter(userService, limiter, routerOpts...),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openUserRepository returns the configured repository and a function that
// releases its resources.
func openUserRepository(ctx context.Context, cfg *config.Config) (domain.UserRepository, func(), error) {
	if cfg.Store != config.StoreSQLite {
		return memory.NewUserRepository(), func() {}, nil
	}

	db, err := sqlite.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	slog.Info("database migrations applied")

	return db.Users(), func() { db.Close() }, nil
}
