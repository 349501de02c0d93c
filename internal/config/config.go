package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Discord   DiscordConfig
	Dashboard DashboardConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Economy   EconomyConfig
}

type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"dev"`
	// memory or postgres
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

type DiscordConfig struct {
	Token    string `envconfig:"DISCORD_TOKEN"`
	ClientID string `envconfig:"CLIENT_ID"`
	// empty registers commands globally
	GuildID string `envconfig:"GUILD_ID"`
	// Discord user ids allowed to call admin endpoints
	AdminIDs       []string      `envconfig:"ADMIN_DISCORD_IDS"`
	StatusInterval time.Duration `envconfig:"STATUS_INTERVAL" default:"30s"`
	// channel that receives a notice when APP_VERSION changes; empty disables it
	UpdateChannelID string `envconfig:"UPDATE_CHANNEL_ID"`
}

type DashboardConfig struct {
	Enabled      bool          `envconfig:"DASHBOARD_ENABLED" default:"true"`
	Port         string        `envconfig:"DASHBOARD_PORT" default:"3000"`
	URL          string        `envconfig:"DASHBOARD_URL" default:"http://localhost:3000"`
	ClientSecret string        `envconfig:"CLIENT_SECRET"`
	JWTSecret    string        `envconfig:"JWT_SECRET"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	StaticDir    string        `envconfig:"DASHBOARD_STATIC_DIR" default:"./web"`
	// empty accepts any origin on the live feed
	AllowedOrigin   string        `envconfig:"ALLOWED_ORIGIN"`
	APIRateLimit    int           `envconfig:"API_RATE_LIMIT" default:"60"`
	APIRateWindow   time.Duration `envconfig:"API_RATE_WINDOW" default:"1m"`
	AuthRateLimit   int           `envconfig:"AUTH_RATE_LIMIT" default:"10"`
	AuthRateWindow  time.Duration `envconfig:"AUTH_RATE_WINDOW" default:"1m"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL"`
}

type RedisConfig struct {
	// empty disables Redis; cache falls back to memory and rate limits to an in-process window
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_PREFIX" default:"tavern"`
}

type EconomyConfig struct {
	StartingBalance int64 `envconfig:"STARTING_BALANCE" default:"1000"`
	DailyReward     int64 `envconfig:"DAILY_REWARD" default:"5000"`
	// 0 means no upper bound
	MaxBet int64 `envconfig:"GAMBLE_MAX_BET" default:"0"`
}

// IsProduction reports whether cookies should be marked secure.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// CallbackURL is the OAuth redirect registered with Discord.
func (d *DashboardConfig) CallbackURL() string {
	return d.URL + "/auth/discord/callback"
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.App.StoreDriver {
	case "memory":
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is not set")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.App.StoreDriver)
	}

	if c.Discord.Token == "" {
		return errors.New("DISCORD_TOKEN is not set")
	}

	if c.Dashboard.Enabled {
		if c.Dashboard.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		if c.Dashboard.ClientSecret == "" || c.Discord.ClientID == "" {
			return errors.New("CLIENT_ID and CLIENT_SECRET are required for the dashboard")
		}
	}

	if c.Economy.StartingBalance < 0 || c.Economy.DailyReward <= 0 || c.Economy.MaxBet < 0 {
		return errors.New("economy settings must be non-negative and the daily reward positive")
	}
	return nil
}

// IsAdmin reports whether the Discord user id is in ADMIN_DISCORD_IDS.
func (d *DiscordConfig) IsAdmin(userID string) bool {
	for _, id := range d.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
