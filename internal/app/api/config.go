package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	adoptapp "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port                   string `mapstructure:"PORT"`
	PostgresDSN            string `mapstructure:"POSTGRES_DSN"`
	SQLitePath             string `mapstructure:"SQLITE_PATH"`
	AdoptionPolicy         string `mapstructure:"ADOPTION_POLICY"`
	MigrateOnStart         bool   `mapstructure:"MIGRATE_ON_START"`
	TemporalAddress        string `mapstructure:"TEMPORAL_ADDRESS"`
	TemporalNamespace      string `mapstructure:"TEMPORAL_NAMESPACE"`
	TemporalDisabled       bool   `mapstructure:"-"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
	Environment            string `mapstructure:"ENVIRONMENT"`
	LogLevel               string `mapstructure:"LOG_LEVEL"`
	OTLPEndpoint           string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure           bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	policy adoptapp.Policy
}

// LoadConfig reads the environment and an optional .env file, applies defaults,
// and validates basic constraints.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	// a missing .env is fine
	_ = v.ReadInConfig()
	return loadConfig(v)
}

func loadConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("SQLITE_PATH", "")
	v.SetDefault("ADOPTION_POLICY", string(adoptapp.AllowReadoption))
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("TEMPORAL_ADDRESS", "")
	v.SetDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	v.SetDefault("TEMPORAL_DISABLED", "")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("ENVIRONMENT", "local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", true)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	cfg.TemporalAddress = strings.TrimSpace(cfg.TemporalAddress)
	cfg.TemporalDisabled = isTruthy(v.GetString("TEMPORAL_DISABLED"))

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a valid TCP port, got %q", cfg.Port)
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be a positive integer")
	}
	policy, err := adoptapp.ParsePolicy(cfg.AdoptionPolicy)
	if err != nil {
		return Config{}, fmt.Errorf("ADOPTION_POLICY: %w", err)
	}
	cfg.policy = policy
	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Policy is the parsed adoption policy.
func (c Config) Policy() adoptapp.Policy {
	if c.policy == "" {
		return adoptapp.AllowReadoption
	}
	return c.policy
}

// TemporalEnabled reports whether adoptions should run as Temporal workflows.
func (c Config) TemporalEnabled() bool {
	return c.TemporalAddress != "" && !c.TemporalDisabled
}

// ShutdownTimeout bounds graceful shutdown.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
