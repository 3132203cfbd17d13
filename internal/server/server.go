package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"findjob-backend/internal/auth"
	"findjob-backend/internal/config"
	"findjob-backend/internal/database"
	"findjob-backend/internal/logger"
	"findjob-backend/internal/notify"
	"findjob-backend/internal/policy"
	"findjob-backend/internal/service"
	"findjob-backend/internal/storage"
)

const blacklistCleanupInterval = 5 * time.Minute

// Server holds the dependencies shared by every route handler.
type Server struct {
	cfg *config.Config

	DB        *database.DBinstanceStruct
	Tokens    *auth.TokenManager
	Blacklist auth.JwtBlacklistStore
	Services  *service.Services

	dispatcher *notify.Dispatcher
	closers    []func() error
}

// New connects to every backing service and wires the application services.
// Background work (email workers, blacklist cleanup) runs until ctx is done
// or Close is called.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	log := logger.Get()

	db, err := database.NewDBInstance(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("database failed to initialize: %w", err)
	}
	s := &Server{
		cfg:     cfg,
		DB:      db,
		Tokens:  auth.NewTokenManager(cfg.SecretKey, cfg.TokenDuration),
		closers: []func() error{db.Close},
	}

	if err := db.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("create admin: %w", err)
	}

	if cfg.Redis.Addr != "" {
		client, err := auth.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.Blacklist = auth.NewRedisBlacklistStore(client)
		s.closers = append(s.closers, client.Close)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis token blacklist")
	} else {
		mem := auth.NewInMemoryBlacklistStore()
		mem.StartCleanup(ctx, blacklistCleanupInterval)
		s.Blacklist = mem
		log.Info().Msg("using in-memory token blacklist")
	}

	var objects storage.Client
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewCloudStorageClient(ctx, cfg.GCSBucket)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		objects = gcs
		s.closers = append(s.closers, gcs.Close)
		log.Info().Str("bucket", cfg.GCSBucket).Msg("storing files in cloud storage")
	}

	mailer, err := notify.NewMailer(cfg.Mail)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.dispatcher = notify.NewDispatcher(mailer, cfg.Mail.Workers, 0, log)
	s.dispatcher.Start(ctx)

	s.Services = service.New(service.Deps{
		DB:         db,
		Authz:      policy.NewAuthorizer(),
		Notifier:   notify.NewNotifier(s.dispatcher),
		Store:      storage.NewStore(objects),
		MapsAPIKey: cfg.MapsAPIKey,
	})
	return s, nil
}

// HTTPServer returns the http.Server serving the API on the configured port.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Close drains queued emails, then releases connections in reverse order.
func (s *Server) Close() error {
	if s.dispatcher != nil {
		s.dispatcher.Stop()
	}
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
