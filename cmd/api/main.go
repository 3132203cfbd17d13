// @title FindJob API
// @version 1.0
// @description Part-time job board: employers post jobs, candidates apply.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"findjob-backend/internal/config"
	"findjob-backend/internal/logger"
	"findjob-backend/internal/server"

	"github.com/gin-gonic/gin"
)

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log := logger.Get()
	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	done <- true
}

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})
	if cfg.SecretKey == "" {
		log.Fatal().Msg("SECRET_KEY must be set")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	bg, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := server.New(bg, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	apiServer := srv.HTTPServer()

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, done)

	log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("http server error")
		_ = srv.Close()
		os.Exit(1)
	}

	<-done
	if err := srv.Close(); err != nil {
		log.Error().Err(err).Msg("failed to release resources")
	}
	log.Info().Msg("graceful shutdown complete")
}
