package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/persuasion-engine/internal/engine"
	"github.com/persuasion-engine/internal/models"
)

// Config represents the application configuration
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Sources  SourcesConfig  `mapstructure:"sources"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// EngineConfig holds synthesis engine settings
type EngineConfig struct {
	StrictSanitize bool `mapstructure:"strict_sanitize"` // Sanitize topics before interpolation
}

// DefaultsConfig is the request configuration used when the caller leaves a field unset
type DefaultsConfig struct {
	Platform        string `mapstructure:"platform"`
	CulturalContext string `mapstructure:"cultural_context"`
	PersuasionLevel string `mapstructure:"persuasion_level"`
	TargetEmotion   string `mapstructure:"target_emotion"`
	ContentType     string `mapstructure:"content_type"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port             int      `mapstructure:"port"`
	SimulatedLatency string   `mapstructure:"simulated_latency"` // Artificial delay before responding, e.g. "4s"
	GenerateRPS      float64  `mapstructure:"generate_rps"`
	GenerateBurst    int      `mapstructure:"generate_burst"`
	FeaturedCron     string   `mapstructure:"featured_cron"` // Rotation of the featured quick prompt
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds preset storage settings
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"` // SQLite file path
}

// SourcesConfig holds topic suggestion sources
type SourcesConfig struct {
	QuickPrompts []string  `mapstructure:"quick_prompts"`
	RSS          RSSConfig `mapstructure:"rss"`
}

// RSSConfig holds RSS feed settings
type RSSConfig struct {
	Enabled    bool      `mapstructure:"enabled"`
	Feeds      []RSSFeed `mapstructure:"feeds"`
	MaxAgeDays int       `mapstructure:"max_age_days"` // Skip items older than this
}

// RSSFeed represents a single RSS feed
type RSSFeed struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // stdout, stderr or file path
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Load .env file if present (ignore errors if not found)
	_ = godotenv.Load()
	_ = godotenv.Load(".env.local")

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".persuasion-engine"))
		}
	}

	v.SetEnvPrefix("PERSUASION")
	v.AutomaticEnv()

	// Explicit bindings for nested keys (Viper doesn't auto-bind underscored nested keys)
	v.BindEnv("engine.strict_sanitize", "PERSUASION_ENGINE_STRICT_SANITIZE")
	v.BindEnv("server.port", "PERSUASION_SERVER_PORT", "PORT")
	v.BindEnv("server.simulated_latency", "PERSUASION_SERVER_SIMULATED_LATENCY")
	v.BindEnv("database.dsn", "PERSUASION_DATABASE_DSN")
	v.BindEnv("sources.rss.enabled", "PERSUASION_SOURCES_RSS_ENABLED")
	v.BindEnv("logging.level", "PERSUASION_LOGGING_LEVEL")
	v.BindEnv("logging.format", "PERSUASION_LOGGING_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is only tolerated when searching the default locations
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.strict_sanitize", false)

	// Initial selection of the content form
	v.SetDefault("defaults.platform", "linkedin")
	v.SetDefault("defaults.cultural_context", "hybrid")
	v.SetDefault("defaults.persuasion_level", "moderate")
	v.SetDefault("defaults.target_emotion", "curiosity")
	v.SetDefault("defaults.content_type", "insight")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.simulated_latency", "0s")
	v.SetDefault("server.generate_rps", 20.0)
	v.SetDefault("server.generate_burst", 40)
	v.SetDefault("server.featured_cron", "0 * * * *") // Hourly
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.dsn", "./data/presets.db")

	v.SetDefault("sources.quick_prompts", DefaultQuickPrompts)
	v.SetDefault("sources.rss.enabled", false)
	v.SetDefault("sources.rss.max_age_days", 7)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
}

// DefaultQuickPrompts are the topic ideas offered when the user has none
var DefaultQuickPrompts = []string{
	"My startup's latest funding round success",
	"Leadership lessons from managing remote teams",
	"AI transformation in Indian fintech",
	"Building authentic personal brand",
	"Overcoming imposter syndrome in tech",
}

// DefaultRequest builds a content request from the configured defaults
func (d DefaultsConfig) DefaultRequest(topic string) models.ContentRequest {
	return models.ContentRequest{
		Platform:        models.Platform(d.Platform),
		Topic:           topic,
		CulturalContext: models.CulturalContext(d.CulturalContext),
		PersuasionLevel: models.PersuasionLevel(d.PersuasionLevel),
		TargetEmotion:   models.TargetEmotion(d.TargetEmotion),
		ContentType:     models.ContentType(d.ContentType),
	}
}

// Latency parses the simulated latency setting
func (s ServerConfig) Latency() (time.Duration, error) {
	if s.SimulatedLatency == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.SimulatedLatency)
	if err != nil {
		return 0, fmt.Errorf("server.simulated_latency: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("server.simulated_latency must not be negative")
	}
	return d, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := engine.NewValidator().Validate(c.Defaults.DefaultRequest("defaults")); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if _, err := c.Server.Latency(); err != nil {
		return err
	}
	if c.Server.GenerateRPS <= 0 {
		return fmt.Errorf("server.generate_rps must be positive")
	}
	if c.Server.GenerateBurst <= 0 {
		return fmt.Errorf("server.generate_burst must be positive")
	}
	if c.Server.FeaturedCron == "" {
		return fmt.Errorf("server.featured_cron is required")
	}
	if c.Sources.RSS.Enabled {
		for _, f := range c.Sources.RSS.Feeds {
			if f.Name == "" || f.URL == "" {
				return fmt.Errorf("sources.rss.feeds entries need both name and url")
			}
		}
	}
	return nil
}
