package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persuasion-engine/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0 * * * *", cfg.Server.FeaturedCron)
	assert.Equal(t, DefaultQuickPrompts, cfg.Sources.QuickPrompts)
	assert.False(t, cfg.Engine.StrictSanitize)

	req := cfg.Defaults.DefaultRequest("topic")
	assert.Equal(t, models.ContentRequest{
		Platform:        models.PlatformLinkedIn,
		Topic:           "topic",
		CulturalContext: models.CulturalHybrid,
		PersuasionLevel: models.PersuasionModerate,
		TargetEmotion:   models.EmotionCuriosity,
		ContentType:     models.ContentInsight,
	}, req)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaults:
  platform: instagram
  persuasion_level: aggressive
server:
  port: 9090
  simulated_latency: 4s
sources:
  rss:
    enabled: true
    feeds:
      - name: hn
        url: https://news.ycombinator.com/rss
`), 0644))

	t.Setenv("PORT", "")
	t.Setenv("PERSUASION_ENGINE_STRICT_SANITIZE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Engine.StrictSanitize)
	assert.Equal(t, "instagram", cfg.Defaults.Platform)
	assert.Equal(t, "hybrid", cfg.Defaults.CulturalContext)
	require.Len(t, cfg.Sources.RSS.Feeds, 1)
	assert.Equal(t, "hn", cfg.Sources.RSS.Feeds[0].Name)

	latency, err := cfg.Server.Latency()
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, latency)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Defaults: DefaultsConfig{
				Platform:        "linkedin",
				CulturalContext: "global",
				PersuasionLevel: "subtle",
				TargetEmotion:   "desire",
				ContentType:     "story",
			},
			Server: ServerConfig{
				Port:          8080,
				GenerateRPS:   1,
				GenerateBurst: 1,
				FeaturedCron:  "@hourly",
			},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"latency", func(c *Config) { c.Server.SimulatedLatency = "soon" }, "server.simulated_latency"},
		{"negative latency", func(c *Config) { c.Server.SimulatedLatency = "-1s" }, "must not be negative"},
		{"rps", func(c *Config) { c.Server.GenerateRPS = 0 }, "generate_rps"},
		{"burst", func(c *Config) { c.Server.GenerateBurst = 0 }, "generate_burst"},
		{"cron", func(c *Config) { c.Server.FeaturedCron = "" }, "featured_cron"},
		{"defaults", func(c *Config) { c.Defaults.Platform = "tiktok" }, "defaults: invalid content request"},
		{"feeds", func(c *Config) {
			c.Sources.RSS.Enabled = true
			c.Sources.RSS.Feeds = []RSSFeed{{Name: "x"}}
		}, "name and url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}
