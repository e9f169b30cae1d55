package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, Discord credentials and upstream endpoints.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	DISCORD_TOKEN=xxxx
//	DISCORD_APP_ID=123
//	DISCORD_GUILD_ID=456
//	DISCORD_CHANNEL_ID=789
//	MARKET_API_URL=https://api.coingecko.com/api/v3/coins/mate
//	STATS_API_URL=https://usemate.com/api/order-api/stats
//	SUBGRAPH_URL=https://api.thegraph.com/subgraphs/name/usemate/mate
//	CACHE_TTL_SECONDS=30
//	ORDERS_PAGE_SIZE=1000
//	DAILY_CRON=0 9 * * *
type Config struct {
	Server   ServerConfig   // HTTP server configuration (api mode)
	Discord  DiscordConfig  // Discord bot credentials and targets
	Upstream UpstreamConfig // Upstream data source endpoints
	Stats    StatsConfig    // Aggregation engine tuning
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// DiscordConfig holds the bot token and the identifiers used for command
// registration and the daily scheduled post.
type DiscordConfig struct {
	Token     string // Bot token; required in bot and register modes
	AppID     string // Application id used for command registration
	GuildID   string // Guild to register the /stats command in
	ChannelID string // Channel receiving the daily scheduled post
}

// UpstreamConfig defines the read-only data sources the aggregator consumes.
//
// Fields:
//   - MarketURL: price/market-data endpoint (price, market cap, 24h changes).
//   - StatsURL: exchange-stats endpoint (locked value, inflow, received amount).
//   - SubgraphURL: paginated GraphQL order-history endpoint.
type UpstreamConfig struct {
	MarketURL   string
	StatsURL    string
	SubgraphURL string
}

// StatsConfig tunes the aggregation engine.
type StatsConfig struct {
	CacheTTL       time.Duration // Expiry window of the upstream request cache
	OrdersPageSize int           // Items requested per subgraph page
	DailyCron      string        // Cron spec of the daily post (empty disables it)
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all fields with a sensible default.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("MARKET_API_URL", "https://api.coingecko.com/api/v3/coins/mate")
	viper.SetDefault("STATS_API_URL", "https://usemate.com/api/order-api/stats")
	viper.SetDefault("SUBGRAPH_URL", "https://api.thegraph.com/subgraphs/name/usemate/mate")

	viper.SetDefault("CACHE_TTL_SECONDS", 30)
	viper.SetDefault("ORDERS_PAGE_SIZE", 1000)
	viper.SetDefault("DAILY_CRON", "0 9 * * *")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Discord: DiscordConfig{
			Token:     viper.GetString("DISCORD_TOKEN"),
			AppID:     viper.GetString("DISCORD_APP_ID"),
			GuildID:   viper.GetString("DISCORD_GUILD_ID"),
			ChannelID: viper.GetString("DISCORD_CHANNEL_ID"),
		},
		Upstream: UpstreamConfig{
			MarketURL:   viper.GetString("MARKET_API_URL"),
			StatsURL:    viper.GetString("STATS_API_URL"),
			SubgraphURL: viper.GetString("SUBGRAPH_URL"),
		},
		Stats: StatsConfig{
			CacheTTL:       time.Duration(viper.GetInt("CACHE_TTL_SECONDS")) * time.Second,
			OrdersPageSize: viper.GetInt("ORDERS_PAGE_SIZE"),
			DailyCron:      viper.GetString("DAILY_CRON"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// The Discord token is deliberately not validated here: it is only
// required in bot and register modes, and those check it at startup.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Upstream.MarketURL == "" {
		missing = append(missing, "MARKET_API_URL")
	}
	if AppConfig.Upstream.StatsURL == "" {
		missing = append(missing, "STATS_API_URL")
	}
	if AppConfig.Upstream.SubgraphURL == "" {
		missing = append(missing, "SUBGRAPH_URL")
	}
	if AppConfig.Stats.CacheTTL <= 0 {
		missing = append(missing, "CACHE_TTL_SECONDS")
	}
	if AppConfig.Stats.OrdersPageSize <= 0 {
		missing = append(missing, "ORDERS_PAGE_SIZE")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
