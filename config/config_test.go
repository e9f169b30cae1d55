package config

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestLoadConfig_Defaults verifies that defaults are loaded.
func TestLoadConfig_Defaults(t *testing.T) {
	// Clear relevant env vars to ensure defaults are used
	for _, key := range []string{
		"SERVER_PORT", "MARKET_API_URL", "STATS_API_URL", "SUBGRAPH_URL",
		"CACHE_TTL_SECONDS", "ORDERS_PAGE_SIZE", "DAILY_CRON",
	} {
		_ = os.Unsetenv(key)
	}

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, "https://api.coingecko.com/api/v3/coins/mate", AppConfig.Upstream.MarketURL)
	assert.Equal(t, "https://usemate.com/api/order-api/stats", AppConfig.Upstream.StatsURL)
	assert.Equal(t, "https://api.thegraph.com/subgraphs/name/usemate/mate", AppConfig.Upstream.SubgraphURL)
	assert.Equal(t, 30*time.Second, AppConfig.Stats.CacheTTL)
	assert.Equal(t, 1000, AppConfig.Stats.OrdersPageSize)
	assert.Equal(t, "0 9 * * *", AppConfig.Stats.DailyCron)
}

// TestLoadConfig_EnvOverrides verifies environment variables take
// precedence over defaults.
func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("ORDERS_PAGE_SIZE", "250")
	t.Setenv("DISCORD_TOKEN", "secret-token")

	LoadConfig()

	assert.Equal(t, "9090", AppConfig.Server.Port)
	assert.Equal(t, 5*time.Second, AppConfig.Stats.CacheTTL)
	assert.Equal(t, 250, AppConfig.Stats.OrdersPageSize)
	assert.Equal(t, "secret-token", AppConfig.Discord.Token)
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		// In child process: set empty AppConfig and call validateConfig() to trigger log.Fatalf (os.Exit)
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
