package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvConfig   = "LIFTSIM_CONFIG"
	EnvLogLevel = "LIFTSIM_LOG_LEVEL"
	EnvLogFile  = "LIFTSIM_LOG_FILE"
)

// Settings are the runtime knobs of the simulator binary.
type Settings struct {
	ConfigSource string
	LogLevel     slog.Level
	LogFile      string
}

// LoadSettings reads envFile if it exists. Keys missing from the file fall back to the process environment.
func LoadSettings(envFile string) (Settings, error) {
	env, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("reading %s: %w", envFile, err)
		}
		env = map[string]string{}
	}
	lookup := func(key string) string {
		if v, ok := env[key]; ok {
			return v
		}
		return os.Getenv(key)
	}

	settings := Settings{
		ConfigSource: DefaultSource,
		LogLevel:     slog.LevelInfo,
		LogFile:      lookup(EnvLogFile),
	}
	if src := lookup(EnvConfig); src != "" {
		settings.ConfigSource = src
	}
	if lvl := lookup(EnvLogLevel); lvl != "" {
		if err := settings.LogLevel.UnmarshalText([]byte(strings.ToUpper(lvl))); err != nil {
			return Settings{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	return settings, nil
}
