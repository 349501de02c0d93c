package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DASHBOARD_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(1000), cfg.Economy.StartingBalance)
	assert.Equal(t, int64(5000), cfg.Economy.DailyReward)
	assert.Equal(t, 30*time.Second, cfg.Discord.StatusInterval)
	assert.Equal(t, "3000", cfg.Dashboard.Port)
	assert.Equal(t, "http://localhost:3000/auth/discord/callback", cfg.Dashboard.CallbackURL())
}

func TestLoadRequiresDatabaseForPostgres(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DASHBOARD_ENABLED", "false")

	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is not set")
}

func TestLoadRequiresSecretsForDashboard(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DASHBOARD_ENABLED", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is not set")
}

func TestAdminIDs(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DASHBOARD_ENABLED", "false")
	t.Setenv("ADMIN_DISCORD_IDS", "111,222")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Discord.IsAdmin("222"))
	assert.False(t, cfg.Discord.IsAdmin("333"))
}
