package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/usemate/statsbot/config"
	"github.com/usemate/statsbot/internal/app"
	"github.com/usemate/statsbot/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// awaitShutdown blocks until an OS interrupt signal (SIGINT, SIGTERM)
// arrives, then runs the provided shutdown function and the cleanup
// callback.
func awaitShutdown(shutdown func(ctx context.Context), cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if shutdown != nil {
		shutdown(ctx)
	}
	cleanup()
	logger.L().Info().Msg("exited gracefully")
}

// main is the entry point of the statsbot application.
//
// Modes (selected via --mode flag):
//   - bot:      Connects to Discord, answers /stats, posts the daily embed.
//   - api:      Starts the REST API exposing the aggregated statistics.
//   - register: Registers the /stats slash command for the configured guild.
//
// Flags:
//   - --mode: Execution mode ("bot", "api" or "register"). Default: "bot".
//   - --port: Port for API mode. Defaults to value from config (SERVER_PORT).
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "bot", "Mode: bot, api or register")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "bot":
		logger.L().Info().Msg("starting discord bot")

		b, sched, cleanup, err := app.InitializeBot()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("bot init error")
		}
		if err := b.Start(); err != nil {
			logger.L().Fatal().Err(err).Msg("bot failed to start")
		}
		if sched != nil {
			sched.Start()
			logger.L().Info().Str("cron", config.AppConfig.Stats.DailyCron).Msg("daily post scheduled")
		}

		awaitShutdown(nil, cleanup)

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		awaitShutdown(func(ctx context.Context) {
			if err := server.Shutdown(ctx); err != nil {
				logger.L().Fatal().Err(err).Msg("server forced to shutdown")
			}
		}, cleanup)

	case "register":
		logger.L().Info().Msg("registering slash commands")

		b, _, cleanup, err := app.InitializeBot()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("bot init error")
		}
		defer cleanup()

		cfg := config.AppConfig.Discord
		if err := b.RegisterCommands(cfg.AppID, cfg.GuildID); err != nil {
			logger.L().Fatal().Err(err).Msg("command registration failed")
		}
		logger.L().Info().Msg("successfully registered application commands")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
