package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/namehaus/registrar/internal/adapter"
	"github.com/namehaus/registrar/internal/addressbook"
	"github.com/namehaus/registrar/internal/api/middleware"
	"github.com/namehaus/registrar/internal/api/server"
	"github.com/namehaus/registrar/internal/config"
	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/emitter"
	"github.com/namehaus/registrar/internal/factory"
	"github.com/namehaus/registrar/internal/ledger"
	"github.com/namehaus/registrar/internal/logger"
	"github.com/namehaus/registrar/internal/payment"
	"github.com/namehaus/registrar/internal/pricing"
	"github.com/namehaus/registrar/internal/providers/jetstream"
	"github.com/namehaus/registrar/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "registrar-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting registrar API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	// Event sinks: postgres archive, plus NATS when configured
	sinks := []emitter.Sink{store.NewArchiver(dataStore, jsonAdapter)}
	if cfg.NATS.URL != "" {
		publisher, err := jetstream.NewPublisher(jetstream.Config{
			URL:               cfg.NATS.URL,
			StreamName:        cfg.NATS.StreamName,
			MaxReconnects:     cfg.NATS.MaxReconnects,
			ReconnectWait:     cfg.NATS.ReconnectWait,
			ConnectionName:    cfg.NATS.ConnectionName,
			PublishMaxElapsed: cfg.NATS.PublishMaxElapsed,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()
		sinks = append(sinks, emitter.NewPublisherSink(publisher.PublishEvent))
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, events will only be archived to the database")
	}

	events := emitter.New(cfg.Worker.PoolSize, sinks...)
	defer events.Close()

	// Load the shared price table
	prices, err := pricing.NewLoader(fs, jsonAdapter).Load(cfg.Registrar.PriceTablePath)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load price table",
			zap.Error(err),
			zap.String("path", cfg.Registrar.PriceTablePath))
	}
	logger.InfoCtx(ctx, "Loaded price table", zap.String("path", cfg.Registrar.PriceTablePath))

	// Payment bank, optionally seeded with initial balances
	bank := payment.NewBank()
	if cfg.Registrar.AccountsPath != "" {
		if err := payment.NewLoader(fs, jsonAdapter).Load(cfg.Registrar.AccountsPath, bank); err != nil {
			logger.FatalCtx(ctx, "Failed to seed accounts",
				zap.Error(err),
				zap.String("path", cfg.Registrar.AccountsPath))
		}
		logger.InfoCtx(ctx, "Seeded accounts", zap.String("path", cfg.Registrar.AccountsPath))
	}

	admin, err := domain.ParseAddress(cfg.Registrar.Admin)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid admin address", zap.Error(err))
	}
	feeReceiver, err := domain.ParseAddress(cfg.Registrar.FeeReceiver)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid fee receiver address", zap.Error(err))
	}
	deployFee, err := domain.ParseAmount(cfg.Registrar.DeployFee)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid deploy fee", zap.Error(err))
	}

	// Shared collaborators and the namespace factory
	records := ledger.NewLog()
	book := addressbook.NewMemoryBook()

	registrarFactory := factory.New(factory.Config{
		Shared: factory.SharedConfig{
			Book:        book,
			Records:     records,
			FeeReceiver: feeReceiver,
			Fee:         deployFee,
		},
		Admin:            admin,
		ExpirationPeriod: cfg.Registrar.ExpirationPeriod,
	}, prices, bank, clock, events)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, registrarFactory, records)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
