package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/nuitfeedback/internal/dashboard"
	"github.com/shrimpsizemoose/nuitfeedback/internal/sentiment"
)

type Config struct {
	Server struct {
		Port string `toml:"port" validate:"required"`
		// RateLimitPerMinute caps /api requests per client, 0 turns the limit off
		RateLimitPerMinute int `toml:"rate_limit_per_minute" validate:"gte=0"`
	} `toml:"server"`

	Database struct {
		DSN string `toml:"dsn" validate:"required"`
		// ResetOnStart drops every stored feedback when the server starts
		ResetOnStart bool `toml:"reset_on_start"`
		SeedOnStart  bool `toml:"seed_on_start"`
	} `toml:"database"`

	Live struct {
		RedisURL string `toml:"redis_url"`
		Channel  string `toml:"channel" validate:"required"`
	} `toml:"live"`

	Dashboard dashboard.Settings `toml:"dashboard"`

	Simulator struct {
		Interval string `toml:"interval" validate:"required"`
	} `toml:"simulator"`

	Analyzer struct {
		Port   string `toml:"port" validate:"required"`
		Policy string `toml:"policy" validate:"required"`
	} `toml:"analyzer"`
}

func DefaultConfig() *Config {
	var config Config
	config.Server.Port = ":5000"
	config.Server.RateLimitPerMinute = 100
	config.Database.DSN = "nuit_chercheurs.db"
	config.Database.ResetOnStart = true
	config.Database.SeedOnStart = true
	config.Live.Channel = "nuit:feedback"
	config.Dashboard = dashboard.DefaultSettings()
	config.Simulator.Interval = "5s"
	config.Analyzer.Port = ":5001"
	config.Analyzer.Policy = sentiment.PolicyCompound
	return &config
}

// LoadConfig reads the TOML file at path on top of the defaults, then
// applies a .env file and environment overrides. An empty path means
// defaults only.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf(
				"error reading config file %s\n> Error: %w\n> Content:\n%s",
				path,
				err,
				string(data),
			)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger.Debug.Printf("Loaded dashboard config: %+v", config.Dashboard)

	return config, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		if !strings.Contains(port, ":") {
			port = ":" + port
		}
		c.Server.Port = port
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Database.DSN = dsn
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Live.RedisURL = redisURL
	}
	if policy := os.Getenv("SENTIMENT_POLICY"); policy != "" {
		c.Analyzer.Policy = policy
	}
	if limit := os.Getenv("RATE_LIMIT_REQUESTS_PER_MINUTE"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_REQUESTS_PER_MINUTE %q: %w", limit, err)
		}
		c.Server.RateLimitPerMinute = n
	}
	return nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if end := c.Dashboard.HourlyStart + c.Dashboard.HourlyHours; end > 24 {
		return fmt.Errorf("invalid config: hourly window %d+%d runs past midnight", c.Dashboard.HourlyStart, c.Dashboard.HourlyHours)
	}
	if _, err := c.SimulatorInterval(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := sentiment.PolicyByName(c.Analyzer.Policy); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) SimulatorInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Simulator.Interval)
	if err != nil {
		return 0, fmt.Errorf("simulator interval %q: %w", c.Simulator.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("simulator interval %q must be positive", c.Simulator.Interval)
	}
	return d, nil
}
