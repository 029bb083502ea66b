package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	SetLogger(zerolog.Nop())
	os.Exit(m.Run())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Bot.PollTimeout != 30 {
		t.Errorf("Expected poll_timeout default 30, got %d", cfg.Bot.PollTimeout)
	}
	if cfg.Bot.RatePerSecond != 25 {
		t.Errorf("Expected rate_per_second default 25, got %f", cfg.Bot.RatePerSecond)
	}
	if cfg.Generation.Model == "" {
		t.Error("Expected a default generation model")
	}
	if cfg.Drafts.TTL != 0 {
		t.Errorf("Expected drafts to never expire by default, got %s", cfg.Drafts.TTL)
	}
	if cfg.Drafts.SweepInterval != Duration(10*time.Minute) {
		t.Errorf("Expected sweep_interval default 10m, got %s", cfg.Drafts.SweepInterval)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected log level default info, got %s", cfg.Logging.Level)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("GENERATION_API_KEY", "gk-test")
	t.Setenv("CHANNEL_ID", "")

	t.Run("File overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := []byte("channel:\n  id: -100123\nbot:\n  poll_timeout: 5\n  allowed_users: [1, 2]\ndrafts:\n  ttl: 48h\n")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}

		if err := LoadConfig(path); err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		cfg := AppConfig

		if cfg.Channel.ID != -100123 {
			t.Errorf("Expected channel -100123, got %d", cfg.Channel.ID)
		}
		if cfg.Bot.PollTimeout != 5 {
			t.Errorf("Expected poll_timeout 5, got %d", cfg.Bot.PollTimeout)
		}
		if len(cfg.Bot.AllowedUsers) != 2 {
			t.Errorf("Expected 2 allowed users, got %v", cfg.Bot.AllowedUsers)
		}
		if cfg.Drafts.TTL != Duration(48*time.Hour) {
			t.Errorf("Expected ttl 48h, got %s", cfg.Drafts.TTL)
		}
		// Untouched fields keep their defaults.
		if cfg.Drafts.SweepInterval != Duration(10*time.Minute) {
			t.Errorf("Expected sweep_interval default, got %s", cfg.Drafts.SweepInterval)
		}
		if cfg.Bot.Token != "123:abc" {
			t.Errorf("Expected token from environment, got %q", cfg.Bot.Token)
		}
		if cfg.Generation.APIKey != "gk-test" {
			t.Errorf("Expected API key from environment, got %q", cfg.Generation.APIKey)
		}
	})

	t.Run("Environment channel wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("channel:\n  id: 1\n"), 0644); err != nil {
			t.Fatal(err)
		}

		t.Setenv("CHANNEL_ID", "-100999")
		if err := LoadConfig(path); err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if AppConfig.Channel.ID != -100999 {
			t.Errorf("Expected env channel to win, got %d", AppConfig.Channel.ID)
		}
	})

	t.Run("Missing file uses defaults", func(t *testing.T) {
		t.Setenv("CHANNEL_ID", "-100123")
		if err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if AppConfig.Bot.PollTimeout != 30 {
			t.Errorf("Expected defaults, got poll_timeout %d", AppConfig.Bot.PollTimeout)
		}
	})
}

func TestLoadConfig_SecretErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	t.Run("Missing bot token", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "")
		t.Setenv("CHANNEL_ID", "-100123")
		if err := LoadConfig(path); !errors.Is(err, ErrMissingBotToken) {
			t.Errorf("Expected ErrMissingBotToken, got %v", err)
		}
	})

	t.Run("Missing channel", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "123:abc")
		t.Setenv("CHANNEL_ID", "")
		if err := LoadConfig(path); !errors.Is(err, ErrMissingChannel) {
			t.Errorf("Expected ErrMissingChannel, got %v", err)
		}
	})

	t.Run("Malformed channel", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "123:abc")
		t.Setenv("CHANNEL_ID", "not-a-number")
		if err := LoadConfig(path); !errors.Is(err, ErrBadChannelID) {
			t.Errorf("Expected ErrBadChannelID, got %v", err)
		}
	})
}
