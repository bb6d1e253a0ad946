// Package config loads machart settings from an optional .env file, the
// environment and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/raykavin/machart/pkg/core"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
)

// Defaults
const (
	DefaultPort          = 8080
	DefaultWidth         = 800
	DefaultHeight        = 400
	DefaultPadding       = 40
	DefaultDuration      = "1500ms"
	DefaultSlowDuration  = "3s"
	DefaultFrameInterval = "16ms"
	DefaultCachePath     = ":memory:"
	DefaultLogLevel      = "info"
)

// Config holds the application configuration
type Config struct {
	Port          int
	Area          core.Area
	Seed          int64
	CachePath     string
	Duration      time.Duration
	SlowDuration  time.Duration
	FrameInterval time.Duration
	Log           LogConfig
}

// LogConfig holds logger settings
type LogConfig struct {
	Level      string
	TimeFormat string
	Colored    bool
	JSON       bool
}

// Load reads the configuration. envFiles are loaded with godotenv before the
// environment is read; missing files are ignored. configFile, when not empty,
// is merged as YAML underneath the environment.
func Load(configFile string, envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("MACHART")
	v.AutomaticEnv()

	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("WIDTH", DefaultWidth)
	v.SetDefault("HEIGHT", DefaultHeight)
	v.SetDefault("PADDING", DefaultPadding)
	v.SetDefault("SEED", 1)
	v.SetDefault("CACHE_PATH", DefaultCachePath)
	v.SetDefault("DURATION", DefaultDuration)
	v.SetDefault("SLOW_DURATION", DefaultSlowDuration)
	v.SetDefault("FRAME_INTERVAL", DefaultFrameInterval)
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)
	v.SetDefault("LOG_TIME_FORMAT", "2006-01-02 15:04:05")
	v.SetDefault("LOG_COLOR", true)
	v.SetDefault("LOG_JSON", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Port: v.GetInt("PORT"),
		Area: core.Area{
			Width:   v.GetFloat64("WIDTH"),
			Height:  v.GetFloat64("HEIGHT"),
			Padding: v.GetFloat64("PADDING"),
		},
		Seed:      v.GetInt64("SEED"),
		CachePath: v.GetString("CACHE_PATH"),
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			TimeFormat: v.GetString("LOG_TIME_FORMAT"),
			Colored:    v.GetBool("LOG_COLOR"),
			JSON:       v.GetBool("LOG_JSON"),
		},
	}

	var err error
	if cfg.Duration, err = parseDuration(v, "DURATION"); err != nil {
		return nil, err
	}
	if cfg.SlowDuration, err = parseDuration(v, "SLOW_DURATION"); err != nil {
		return nil, err
	}
	if cfg.FrameInterval, err = parseDuration(v, "FRAME_INTERVAL"); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d: %w", c.Port, core.ErrInvalidParameter)
	}
	if !c.Area.Valid() {
		return fmt.Errorf("area %vx%v padding %v: %w", c.Area.Width, c.Area.Height, c.Area.Padding, core.ErrInvalidParameter)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame interval %s: %w", c.FrameInterval, core.ErrInvalidParameter)
	}
	return nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := str2duration.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s=%q: %w", key, raw, core.ErrInvalidParameter)
	}
	return d, nil
}

func loadEnvFiles(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}
