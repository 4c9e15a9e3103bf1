package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/time/rate"

	httpapi "collectrent/internal/api/http"
	"collectrent/internal/config"
	"collectrent/internal/domain"
	"collectrent/internal/engine"
	"collectrent/internal/events"
	"collectrent/internal/ledger"
	"collectrent/internal/logger"
	"collectrent/internal/repository"
	"collectrent/internal/repository/memory"
	"collectrent/internal/repository/postgres"
	"collectrent/internal/security"
	"collectrent/internal/telemetry"
	"collectrent/internal/ticker"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting collectrent...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "store", cfg.Store.Backend)
	logger.Info("Ticker configuration", "cron_spec", cfg.Ticker.CronSpec, "genesis_tick", cfg.Ticker.GenesisTick)

	// Initialize telemetry
	shutdownTelemetry, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		logger.Error("Failed to set up telemetry", "error", err)
		log.Fatalf("Failed to set up telemetry: %v", err)
	}

	// Initialize Database, only when a configured component needs it
	var db *sql.DB
	if cfg.RequiresDatabase() {
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err = sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Test database connection
		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")
	}

	// Initialize store and bank
	var (
		assets     repository.AssetRepository
		agreements repository.AgreementRepository
		shares     repository.ShareRepository
		bank       ledger.Gateway
	)
	switch cfg.Store.Backend {
	case "postgres":
		store := postgres.NewStore(db)
		assets = store.AssetRepository
		agreements = store.AgreementRepository
		shares = store.ShareRepository
		bank = ledger.NewPostgresBank(db)
	default:
		store := memory.NewStore()
		assets = store.AssetRepository
		agreements = store.AgreementRepository
		shares = store.ShareRepository
		bank = ledger.NewMemoryBank()
	}

	// Initialize event sinks. The log sink always runs; the journal or
	// the in-process collector backs the history endpoint; email is
	// optional.
	sinks := []events.Sink{events.NewLogSink()}
	var history httpapi.EventHistory
	if cfg.Events.JournalEnabled {
		journal := events.NewJournal(db)
		sinks = append(sinks, journal)
		history = journal
	} else {
		collector := events.NewCollector()
		sinks = append(sinks, collector)
		history = collector
	}
	if cfg.Events.Email.APIKey != "" {
		logger.Info("Email notifications enabled", "from", cfg.Events.Email.FromEmail)
		sinks = append(sinks, events.NewEmailNotifier(
			cfg.Events.Email.APIKey,
			cfg.Events.Email.FromEmail,
			cfg.Events.Email.FromName,
			bank,
		))
	}
	sink := events.NewMulti(sinks...)

	// Initialize the clock and the engine
	counter := ticker.NewCounter(domain.Tick(cfg.Ticker.GenesisTick))
	eng := engine.NewEngine(assets, agreements, shares, bank, sink, counter)

	driver, err := ticker.NewDriver(cfg.Ticker.CronSpec, counter, eng)
	if err != nil {
		logger.Error("Invalid ticker cron spec", "spec", cfg.Ticker.CronSpec, "error", err)
		log.Fatalf("Invalid ticker cron spec: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(
		httpapi.NewSystemHandler(counter),
		httpapi.NewAccountHandler(bank, tokenManager, counter),
		httpapi.NewAssetHandler(eng),
		httpapi.NewRentalHandler(eng),
		httpapi.NewShareHandler(eng),
		httpapi.NewHistoryHandler(history),
		httpapi.NewAuthMiddleware(tokenManager),
		rate.NewLimiter(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst),
	)

	server := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeout) * time.Second,
	}

	// Start the clock, then serve
	driver.Start()
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown: stop the clock first so no scheduler pass runs
	// while the server drains.
	logger.Info("Shutting down...")
	driver.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("Telemetry shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
