// Package config loads bot configuration from a YAML file with
// struct-tag defaults, plus secrets from the environment.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Duration wraps time.Duration so YAML values like "10m" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	dur, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config represents the complete configuration structure
type Config struct {
	Bot        BotConfig        `yaml:"bot"`
	Channel    ChannelConfig    `yaml:"channel"`
	Generation GenerationConfig `yaml:"generation"`
	Drafts     DraftsConfig     `yaml:"drafts"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type BotConfig struct {
	// Token is never read from YAML; it comes from BOT_TOKEN.
	Token string `yaml:"-"`

	// AllowedUsers restricts guide commands to these user IDs.
	// Empty means any private chat may use the bot.
	AllowedUsers []int64 `yaml:"allowed_users"`

	// PollTimeout is the long-polling timeout in seconds.
	PollTimeout int `yaml:"poll_timeout" default:"30"`

	// RatePerSecond caps outbound Bot API calls (flood control).
	RatePerSecond float64 `yaml:"rate_per_second" default:"25"`
}

type ChannelConfig struct {
	// ID is the destination channel. The CHANNEL_ID environment
	// variable overrides the YAML value.
	ID int64 `yaml:"id"`
}

type GenerationConfig struct {
	// APIKey is never read from YAML; it comes from GENERATION_API_KEY.
	APIKey string `yaml:"-"`

	Model string `yaml:"model" default:"llama-3.1-8b-instant"`

	// BaseURL points at any OpenAI-compatible endpoint.
	BaseURL string `yaml:"base_url" default:"https://api.groq.com/openai/v1"`
}

type DraftsConfig struct {
	// TTL expires unapproved drafts idle this long. Zero never expires,
	// matching the original behavior.
	TTL Duration `yaml:"ttl" default:"0s"`

	SweepInterval Duration `yaml:"sweep_interval" default:"10m"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.loadSecrets(); err != nil {
		return err
	}

	AppConfig = config
	return nil
}

// loadSecrets pulls tokens and overrides from the environment.
func (c *Config) loadSecrets() error {
	c.Bot.Token = os.Getenv("BOT_TOKEN")
	if c.Bot.Token == "" {
		return ErrMissingBotToken
	}

	c.Generation.APIKey = os.Getenv("GENERATION_API_KEY")

	if raw := os.Getenv("CHANNEL_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadChannelID, raw)
		}
		c.Channel.ID = id
	}
	if c.Channel.ID == 0 {
		return ErrMissingChannel
	}

	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch {
		case field.Type() == reflect.TypeOf(Duration(0)):
			if val, err := time.ParseDuration(defaultValue); err == nil {
				field.SetInt(int64(val))
			}
		case field.Kind() == reflect.String:
			field.SetString(defaultValue)
		case field.Kind() == reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case field.Kind() == reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case field.Kind() == reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case field.Kind() == reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
