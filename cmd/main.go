package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crop_forecast/internal/config"
	"crop_forecast/internal/forecast"
	"crop_forecast/internal/handlers"
	"crop_forecast/internal/logger"
	"crop_forecast/internal/repository"
	"crop_forecast/internal/repository/db"
	"crop_forecast/internal/server"
	"crop_forecast/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        Crop Price Forecast API
// @version      1.0
// @description  Session-gated JSON view of recorded crop price predictions.
// @host         localhost:8080
// @BasePath     /
// @schemes      http
func main() {
	// load configs/config.yml (+ .env, env overrides)
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)
	if cfg.UsesDevSigningKey() {
		log.Warnw("auth.signing_key is the built-in development key; set AUTH_SIGNING_KEY")
	}

	// open DB
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	engine := forecast.NewEngine(forecast.Config{
		DatasetPath: cfg.Dataset.Path,
		YearColumn:  cfg.Dataset.YearColumn,
		PriceColumn: cfg.Dataset.PriceColumn,
		ChartPath:   cfg.Chart.Path,
		Trees:       cfg.Forecast.Trees,
	})
	services := service.NewService(repos, engine, service.SessionConfig{
		SigningKey: cfg.Auth.SigningKey,
		TTL:        cfg.Auth.SessionTTL,
	})
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		ChartPath:     cfg.Chart.Path,
		SessionTTL:    cfg.Auth.SessionTTL,
		SecureCookies: cfg.Auth.SecureCookies,
	})

	// start HTTP server
	srv := server.New(cfg.Server.WriteTimeout)
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("server started", "port", cfg.Port, "dataset", cfg.Dataset.Path)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
