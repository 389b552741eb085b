package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"AdvisorDesk"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	// Source selects where snapshots come from: "file" or "postgres".
	Source struct {
		Kind    string `envconfig:"SOURCE_KIND" default:"file"`
		DataDir string `envconfig:"DATA_DIR" default:"./data"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"advisordesk"`
	}

	Cache struct {
		TTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	}

	Fetch struct {
		MaxAttempts int           `envconfig:"FETCH_MAX_ATTEMPTS" default:"3"`
		BaseDelay   time.Duration `envconfig:"FETCH_BASE_DELAY" default:"1s"`
		Timeout     time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	// Client is used by the TUI to reach a running API server.
	Client struct {
		BaseURL string `envconfig:"API_BASE_URL" default:""`
	}
}

// APIBaseURL is the client target, defaulting to the local server port.
func (c *Config) APIBaseURL() string {
	if c.Client.BaseURL != "" {
		return c.Client.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", c.App.Port)
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
