package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/assets"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/chat"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/config"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/marketstore"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/providers"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/server"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/session"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/tools"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/usage"
)

// env bootstrap function
func loadEnv(logger *logrus.Logger) {
	// Get the project root directory (where go.mod is)
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		logger.Warnf("no .env file found at %s, using system environment variables", envPath)
	} else {
		logger.Infof("loaded .env from %s", envPath)
	}
}

// main is the entry point for the chat gateway
// It initializes all dependencies and starts the HTTP server with graceful shutdown
func main() {
	// Initialize structured logger with custom formatting
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	// load .env BEFORE anything reads os.Getenv
	loadEnv(logger)

	// Load and validate configuration from environment variables
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown (Ctrl+C, SIGTERM)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Initialize Redis client for session memory and the usage ledger
	rclient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0, // Use default database for main application
	})
	if err := rclient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to Redis")
	}

	sessions, err := session.NewStore(rclient)
	if err != nil {
		logger.WithError(err).Fatal("failed to create session store")
	}

	ledger, err := usage.NewLedger(rclient, cfg.DailyChatLimit, cfg.QuotaTimezone)
	if err != nil {
		logger.WithError(err).Fatal("failed to create usage ledger")
	}

	// Initialize the ClickHouse-backed market store (optional: the gateway
	// degrades to snapshot-free answers without it)
	var market *marketstore.Store
	if store, serr := marketstore.New(ctx, marketstore.Config{
		Addr:     cfg.ClickHouseAddr,
		Database: cfg.ClickHouseDatabase,
		Username: cfg.ClickHouseUsername,
		Password: cfg.ClickHousePassword,
		Logger:   logger,
	}); serr != nil {
		logger.WithError(serr).Warn("market store unavailable, continuing without snapshots")
	} else {
		market = store
		defer func() {
			_ = market.Close()
		}()
	}

	// Entity resolver over the ticker registry
	var lookup assets.Lookup
	if market != nil {
		lookup = market
	}
	resolver := assets.NewResolver(lookup, logger)

	// Data fan-out clients
	social := tools.NewSocialClient(cfg.LunarCrushBaseURL, cfg.LunarCrushAPIKey)
	social.HTTP.Timeout = cfg.HTTPTimeout
	security := tools.NewSecurityClient(cfg.GoPlusBaseURL)
	security.HTTP.Timeout = cfg.HTTPTimeout
	derivatives := tools.NewDerivativesClient(cfg.BinanceFuturesURL)
	derivatives.HTTP.Timeout = cfg.HTTPTimeout

	orchestrator := &tools.Orchestrator{
		Social:      social,
		Security:    security,
		Derivatives: derivatives,
		News:        tools.NewNewsClient(cfg.FinnhubAPIKey),
		Logger:      logger,
	}
	if market != nil {
		orchestrator.Market = market
	}

	// Provider fallback chain, fixed order, built once at startup
	openrouter, err := providers.NewOpenRouterAdapter(cfg.OpenRouterAPIKey, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to create openrouter adapter")
	}
	gateway := providers.NewGateway([]providers.StreamAdapter{
		providers.NewOpenAIAdapter(cfg.OpenAIAPIKey, logger),
		providers.NewAnthropicAdapter(cfg.AnthropicAPIKey, logger),
		openrouter,
	}, logger)
	logger.WithField("providers", gateway.Providers()).Info("provider chain configured")

	pipeline := &chat.Pipeline{
		Sessions:     sessions,
		Resolver:     resolver,
		Orchestrator: orchestrator,
		Gateway:      gateway,
		Ledger:       ledger,
		Logger:       logger,
	}

	// Create handlers with all dependencies injected
	h := &server.Handlers{
		Pipeline:   pipeline,
		Ledger:     ledger,
		AdminToken: cfg.AdminToken,
		DevMode:    cfg.DevMode,
		Logger:     logger,
	}

	// Create HTTP server with configuration and handlers
	srv, err := server.NewServer(server.ServerDeps{
		Handlers: h,
		Config: server.ServerConfig{
			Addr:    cfg.APIAddr,
			DevMode: cfg.DevMode,
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create http server")
	}

	// Setup graceful shutdown in a separate goroutine
	go func() {
		<-sigCh // Wait for shutdown signal
		logger.Info("shutting down")
		cancel()                               // Cancel context to stop ongoing operations
		_ = srv.Shutdown(context.Background()) // Gracefully shutdown HTTP server
	}()

	// Start the HTTP server
	logger.WithField("addr", cfg.APIAddr).Info("chat gateway starting")
	if err := srv.Start(); err != nil {
		// "http: Server closed" is expected during graceful shutdown
		if err.Error() == "http: Server closed" {
			return
		}
		logger.WithError(err).Fatal("chat gateway failed")
	}

	// Wait for server to be fully shut down
	if err := srv.WaitClosed(context.Background()); err != nil {
		fmt.Println(err)
	}
}
