package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"slack-gateway/internal/app"
	"slack-gateway/internal/common/logging"
	"slack-gateway/internal/config"
	"slack-gateway/internal/handlers"
	"slack-gateway/internal/middleware"
	"slack-gateway/internal/oauth"
	"slack-gateway/internal/redis"
	"slack-gateway/internal/server"
	"slack-gateway/internal/signature"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load environment variables
	_ = godotenv.Load()

	runtime.GOMAXPROCS(runtime.NumCPU())

	// Initialize logging
	logging.InitGlobalLogger()
	defer logging.MustSync()

	logging.Info("Starting slack gateway",
		logging.Field{Key: "cpus", Value: runtime.NumCPU()},
	)

	// Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logging.Error("Configuration validation failed", err)
		return err
	}

	verifier, err := signature.NewVerifier(cfg.SigningSecret)
	if err != nil {
		logging.Error("Failed to initialize signature verifier", err)
		return err
	}

	a := app.New(logging.GetGlobalLogger())
	registerHandlers(a)

	var (
		installCfg *oauth.InstallConfig
		states     oauth.StateStore
		exchanger  *oauth.Exchanger
		redisCli   *redis.Client
	)

	if cfg.OAuthEnabled() {
		installCfg = &oauth.InstallConfig{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.Scopes,
			UserScopes:   cfg.UserScopes,
			RedirectURI:  cfg.RedirectURI,
		}
		if err := installCfg.Validate(); err != nil {
			logging.Error("Invalid OAuth configuration", err)
			return err
		}

		states, redisCli, err = buildStateStore(cfg)
		if err != nil {
			logging.Error("Failed to initialize state store", err)
			return err
		}
		if redisCli != nil {
			defer redisCli.Close()
		}

		exchanger = oauth.NewExchanger(installCfg)
		logging.Info("OAuth install flow enabled",
			logging.Field{Key: "state_store", Value: cfg.StateStore},
			logging.Field{Key: "client_id", Value: cfg.ClientID},
		)
	}

	h := handlers.New(verifier, installCfg, states, exchanger, a, logging.GetGlobalLogger())

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.HandleFunc("/slack/events", h.HandleEvents).Methods("POST")
	router.HandleFunc("/slack/install", h.HandleInstall).Methods("GET")
	router.HandleFunc("/slack/oauth/callback", h.HandleOAuthCallback).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")

	srv := server.New(router, cfg.Port, cfg.TLSCert, cfg.TLSKey)
	if err := srv.Start(); err != nil {
		logging.Error("Server failed to start", err)
		return err
	}

	logging.Info("Server listening", logging.Field{Key: "port", Value: cfg.Port})

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", err)
		return err
	}

	logging.Info("Server exited")
	return nil
}

// buildStateStore picks the OAuth state store implementation from the
// configuration. The Redis client is returned so the caller can close it.
func buildStateStore(cfg *config.Config) (oauth.StateStore, *redis.Client, error) {
	switch cfg.StateStore {
	case "redis":
		cli, err := redis.NewClient(&redis.Config{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			PoolSize: cfg.RedisPoolSize,
		})
		if err != nil {
			return nil, nil, err
		}
		return oauth.NewRedisStateStore(cli), cli, nil

	case "signed":
		store, err := oauth.NewSignedStateStore(cfg.StateSecret)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil

	default:
		return oauth.NewMemoryStateStore(), nil, nil
	}
}

// registerHandlers wires the app's event, command, shortcut, and install
// callbacks. This is where a deployment plugs in its own behavior.
func registerHandlers(a *app.App) {
	a.OnEvent("app_mention", func(ctx context.Context, event *app.Event) error {
		logging.Info("App mentioned",
			logging.Field{Key: "user", Value: event.User},
			logging.Field{Key: "channel", Value: event.Channel},
		)
		return nil
	})

	a.OnInstall(func(ctx context.Context, installation *oauth.Installation) error {
		logging.Info("Workspace installed",
			logging.Field{Key: "team_id", Value: installation.TeamID},
			logging.Field{Key: "team_name", Value: installation.TeamName},
		)
		return nil
	})
}
