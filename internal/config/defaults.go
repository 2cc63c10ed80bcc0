package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"tick_interval": "1s",
		"filter":        "recent",
		"theme":         "nord",
		"data_dir":      "~/.local/state/tminus",
		"alert": map[string]interface{}{
			"sound_file":    "",
			"tone_hz":       880.0,
			"tone_gain":     0.18,
			"tone_duration": "500ms",
			"sample_rate":   44100,
		},
		"notify": map[string]interface{}{
			"enabled": true,
		},
		"debug": map[string]interface{}{
			"log_file": "",
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.config/tminus/config.yaml"
}
