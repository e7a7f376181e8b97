package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix is prepended to every variable name, e.g. EDA_OUTPUT_DIR.
const envPrefix = "EDA"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPath string `envconfig:"INPUT_PATH"`
	Sheet     string `envconfig:"SHEET"`

	SourceDriver string `envconfig:"SOURCE_DRIVER" validate:"omitempty,oneof=postgres sqlite"`
	SourceDSN    string `envconfig:"SOURCE_DSN"`
	SourceTable  string `envconfig:"SOURCE_TABLE" default:"listings" validate:"required_with=SourceDriver"`

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"scraper"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"scraper123"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"rental_db"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	MaxRetries   int           `envconfig:"MAX_RETRIES" default:"3" validate:"gte=1"`
	RetryBackoff time.Duration `envconfig:"RETRY_BACKOFF" default:"2s"`

	PriceCeiling  float64 `envconfig:"PRICE_CEILING" default:"1000" validate:"gt=0"`
	HistogramBins int     `envconfig:"HISTOGRAM_BINS" default:"50" validate:"gte=1"`
	TopN          int     `envconfig:"TOP_N" default:"10" validate:"gte=1"`
	PreviewRows   int     `envconfig:"PREVIEW_ROWS" default:"5" validate:"gte=0"`

	OutputDir    string `envconfig:"OUTPUT_DIR" default:"./output" validate:"required"`
	RenderCharts bool   `envconfig:"RENDER_CHARTS" default:"true"`
	WriteSummary bool   `envconfig:"WRITE_SUMMARY" default:"true"`
	ChartWidth   int    `envconfig:"CHART_WIDTH" default:"800" validate:"gte=200"`
	ChartHeight  int    `envconfig:"CHART_HEIGHT" default:"500" validate:"gte=200"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

// Load reads the .env file, decodes the environment and validates the result.
// args are the positional command-line arguments; the first one, when given,
// overrides INPUT_PATH.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode environment: %w", err)
	}
	if len(args) > 0 && args[0] != "" {
		cfg.InputPath = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and that exactly one input is named.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	if c.SourceDriver == "" && c.InputPath == "" {
		return fmt.Errorf("config: no input: pass a file path or set %s_INPUT_PATH or %s_SOURCE_DRIVER",
			envPrefix, envPrefix)
	}
	if c.SourceDriver == "sqlite" && c.SourceDSN == "" {
		return fmt.Errorf("config: %s_SOURCE_DSN is required for sqlite", envPrefix)
	}
	return nil
}

// DSN returns the connection string for the SQL source. An explicit
// SOURCE_DSN wins; otherwise a PostgreSQL string is built from the parts.
func (c *Config) DSN() string {
	if c.SourceDSN != "" {
		return c.SourceDSN
	}
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
