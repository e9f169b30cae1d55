// Package app wires the application together. The request cache and the
// hourly snapshot store are created here and passed into the aggregator
// explicitly, so tests can supply isolated instances and deterministic
// clocks.
package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/usemate/statsbot/config"
	"github.com/usemate/statsbot/internal/api"
	"github.com/usemate/statsbot/internal/bot"
	"github.com/usemate/statsbot/internal/cache"
	"github.com/usemate/statsbot/internal/history"
	"github.com/usemate/statsbot/internal/scheduler"
	"github.com/usemate/statsbot/internal/stats"
	"github.com/usemate/statsbot/internal/upstream"
)

// BuildStats constructs the aggregation engine from configuration: one
// TTL request cache and one hourly snapshot store shared by all upstream
// clients and aggregation passes for the lifetime of the process.
//
// Returns:
//   - stats.Service: the snapshot aggregator.
//   - *upstream.MarketClient: exposed separately so the readiness probe
//     can ping the primary upstream source.
func BuildStats(cfg config.Config) (stats.Service, *upstream.MarketClient) {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	requestCache := cache.New(cache.WithTTL(cfg.Stats.CacheTTL))

	market := upstream.NewMarketClient(cfg.Upstream.MarketURL, httpClient, requestCache)
	exchange := upstream.NewStatsClient(cfg.Upstream.StatsURL, httpClient, requestCache)
	subgraph := upstream.NewSubgraphClient(cfg.Upstream.SubgraphURL, httpClient, requestCache)

	svc := stats.NewService(
		market,
		exchange,
		subgraph,
		history.NewStore(),
		stats.WithPageSize(cfg.Stats.OrdersPageSize),
	)
	return svc, market
}

// InitializeApp sets up the HTTP API mode and returns a fully configured
// Gin router, a cleanup function for graceful shutdown, and any error
// encountered during initialization.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	svc, market := BuildStats(cfg)

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(market.Ping)
	healthHandler.Register(router)

	cleanup := func() {}
	return router, cleanup, nil
}

// InitializeBot sets up the Discord bot mode: the bot itself and, when a
// cron spec is configured, the daily post scheduler (nil otherwise).
// The returned cleanup closes the gateway connection and stops the
// schedule.
func InitializeBot() (*bot.Bot, *scheduler.Scheduler, func(), error) {
	cfg := config.AppConfig
	if cfg.Discord.Token == "" {
		return nil, nil, nil, fmt.Errorf("DISCORD_TOKEN is required in bot mode")
	}

	svc, _ := BuildStats(cfg)

	b, err := bot.New(cfg.Discord.Token, svc, cfg.Discord.ChannelID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	var sched *scheduler.Scheduler
	if cfg.Stats.DailyCron != "" && cfg.Discord.ChannelID != "" {
		sched, err = scheduler.New(cfg.Stats.DailyCron, b.PostDaily)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize scheduler: %w", err)
		}
	}

	cleanup := func() {
		if sched != nil {
			sched.Stop()
		}
		_ = b.Close()
	}
	return b, sched, cleanup, nil
}
