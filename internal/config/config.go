package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dori/tminus/internal/model"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TMINUS_"

type Config struct {
	TickInterval time.Duration `koanf:"tick_interval"`
	Filter       string        `koanf:"filter"`
	Theme        string        `koanf:"theme"`
	DataDir      string        `koanf:"data_dir"`
	Alert        AlertConfig   `koanf:"alert"`
	Notify       NotifyConfig  `koanf:"notify"`
	Debug        DebugConfig   `koanf:"debug"`
}

type AlertConfig struct {
	SoundFile    string        `koanf:"sound_file"` // WAV asset; empty plays the tone only
	ToneHz       float64       `koanf:"tone_hz"`
	ToneGain     float64       `koanf:"tone_gain"`
	ToneDuration time.Duration `koanf:"tone_duration"`
	SampleRate   int           `koanf:"sample_rate"`
}

type NotifyConfig struct {
	Enabled bool `koanf:"enabled"`
}

type DebugConfig struct {
	LogFile string `koanf:"log_file"`
}

// Load merges defaults, the YAML file at configPath (if present) and
// TMINUS_* environment variables, in that order.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	// TMINUS_ALERT__SOUND_FILE -> alert.sound_file
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		if s == envPrefix+"DEBUG" {
			return "" // handled below; would clobber the debug section
		}
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// TMINUS_DEBUG=1 is the short form for a debug log in the temp dir
	if os.Getenv("TMINUS_DEBUG") == "1" && k.String("debug.log_file") == "" {
		k.Set("debug.log_file", filepath.Join(os.TempDir(), "tminus-debug.log"))
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.Alert.SoundFile = expandPath(cfg.Alert.SoundFile)
	cfg.Debug.LogFile = expandPath(cfg.Debug.LogFile)

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive")
	}

	if _, err := model.ParseFilter(c.Filter); err != nil {
		return err
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Alert.ToneHz <= 0 {
		return fmt.Errorf("alert.tone_hz must be positive")
	}

	if c.Alert.ToneGain < 0 || c.Alert.ToneGain > 1 {
		return fmt.Errorf("alert.tone_gain must be between 0 and 1")
	}

	if c.Alert.ToneDuration <= 0 {
		return fmt.Errorf("alert.tone_duration must be positive")
	}

	if c.Alert.SampleRate <= 0 {
		return fmt.Errorf("alert.sample_rate must be positive")
	}

	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
