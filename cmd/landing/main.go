package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/rideaware/landing"
	"github.com/rideaware/landing/bolt"
	"github.com/rideaware/landing/http"
	"github.com/rideaware/landing/mongo"
	"github.com/rideaware/landing/postgres"
	"github.com/rideaware/landing/smtp"
	"github.com/rideaware/landing/sqlite"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to load .env")
	}

	config, err := loadConfig(".", "./config")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn: config.Sentry.DSN,
	}); err != nil {
		logger.Fatal().Err(err).Msg("sentry.Init")
	}
	defer sentry.Flush(2 * time.Second)

	a, err := newApp(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create app")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()

	if err := a.Run(); err != nil {
		_ = a.Close()
		logger.Error().Err(err).Msg("Failed to start")
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	if err := a.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to shut down")
		os.Exit(1)
	}
}

type app struct {
	config     *landing.Config
	logger     zerolog.Logger
	store      landing.Store
	httpServer *http.Server
}

func newApp(config *landing.Config, logger zerolog.Logger) (*app, error) {
	store, err := openStore(config, logger)
	if err != nil {
		return nil, err
	}

	httpServer, err := http.NewServer(logger)
	if err != nil {
		return nil, err
	}

	return &app{
		config:     config,
		logger:     logger,
		store:      store,
		httpServer: httpServer,
	}, nil
}

// openStore returns the store for the configured backend, not yet opened.
func openStore(config *landing.Config, logger zerolog.Logger) (landing.Store, error) {
	switch config.DB.Type {
	case "postgres":
		return postgres.NewStore(postgres.NewDB(postgres.Options{
			Host:     config.DB.Host,
			Port:     config.DB.Port,
			Name:     config.DB.Name,
			User:     config.DB.User,
			Password: config.DB.Password,
			Timeout:  config.DB.Timeout,
		})), nil
	case "sqlite":
		return sqlite.NewStore(sqlite.NewDB(config.DB.Path, logger)), nil
	case "bolt":
		return bolt.NewStore(bolt.NewDB(config.DB.Path)), nil
	case "mongo":
		return mongo.NewStore(mongo.NewDB(config.DB.URI, config.DB.Name, config.DB.Timeout)), nil
	}

	return nil, errors.Errorf("unsupported database type %q", config.DB.Type)
}

func (a *app) Run() error {
	if err := a.store.Open(); err != nil {
		return err
	}
	a.logger.Info().Str("type", a.config.DB.Type).Msg("Database initialized")

	a.httpServer.Addr = a.config.HTTP.Addr
	a.httpServer.Domain = a.config.HTTP.Domain
	a.httpServer.MaxConns = a.config.HTTP.MaxConns
	a.httpServer.HMACSecret = a.config.Newsletter.HMAC.Secret
	a.httpServer.HMACRequired = a.config.Newsletter.HMAC.Required
	a.httpServer.AdminEmail = a.config.Contact.AdminEmail
	a.httpServer.Store = a.store
	a.httpServer.Notifier = smtp.NewNotifier(a.config)

	if err := a.httpServer.Open(); err != nil {
		return err
	}
	a.logger.Info().Str("addr", a.httpServer.ListenAddr()).Str("domain", a.config.HTTP.Domain).Msg("Listening")

	return nil
}

func (a *app) Close() error {
	if a.httpServer != nil {
		if err := a.httpServer.Close(); err != nil {
			return err
		}
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			return err
		}
	}

	return nil
}
