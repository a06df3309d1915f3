package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trading_dashboard/internal/binance"
	"trading_dashboard/internal/config"
	"trading_dashboard/internal/handlers"
	"trading_dashboard/internal/logger"
	"trading_dashboard/internal/repository"
	"trading_dashboard/internal/repository/db"
	"trading_dashboard/internal/server"
	"trading_dashboard/internal/service"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

const (
	shutdownTimeout = 10 * time.Second
	sentryFlushWait = 2 * time.Second
)

// @title        Trading Dashboard API
// @version      1.0
// @description  Accounts, password reset, trading clients, bot configs and a read-only Binance portfolio.
// @securityDefinitions.apikey  BearerAuth
// @in           header
// @name         Authorization
func main() {
	// load configs/config.yml, .env and environment
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalw("error reading config", "err", err)
	}

	log := logger.Init(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = log.Sync() }()

	if err := initSentry(cfg.Sentry); err != nil {
		log.Warnw("sentry_init_failed", "err", err)
	}
	defer sentry.Flush(sentryFlushWait)

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Deps{
		Tokens: service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Auth: service.AuthOptions{
			ResetTokenTTL:    cfg.Auth.ResetTokenTTL,
			ExposeResetToken: cfg.Auth.ExposeResetToken,
			Log:              log,
		},
	})
	if p := newPortfolio(cfg.Binance, log); p != nil {
		services.Portfolio = p
	}

	gin.SetMode(gin.ReleaseMode)
	apiHandler := handlers.NewHandler(services, log)
	srv := server.New(cfg.Port, apiHandler.InitRoutes())

	go func() {
		log.Infow("server_started", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(srv, log)
}

// newPortfolio returns nil when exchange credentials are missing; the
// /binance routes then answer 503.
func newPortfolio(cfg config.BinanceConfig, log *logger.Logger) *binance.Aggregator {
	client, err := binance.NewClient(cfg.BaseURL, cfg.APIKey, cfg.APISecret, cfg.Timeout)
	if errors.Is(err, binance.ErrMissingCredentials) {
		log.Warnw("binance_not_configured", "hint", "set BINANCE_API_KEY and BINANCE_API_SECRET")
		return nil
	}
	if err != nil {
		log.Errorw("binance_client_failed", "err", err)
		return nil
	}
	return binance.NewAggregator(client, binance.Options{
		PriceCacheTTL:    cfg.PriceCacheTTL,
		PriceConcurrency: cfg.PriceConcurrency,
		Log:              log.With("component", "binance"),
	})
}

func initSentry(cfg config.SentryConfig) error {
	if cfg.DSN == "" {
		return nil
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		AttachStacktrace: true,
	})
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
