package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "SIMULAPNG_LOG_LEVEL"
	EnvOutputMode = "SIMULAPNG_OUTPUT_MODE"
)

type SimulaConfig struct {
	LogLevel   zerolog.Level
	OutputMode os.FileMode
}

// Config is the process-wide configuration, seeded from the environment.
var Config = Default()

func Default() SimulaConfig {
	return SimulaConfig{
		LogLevel:   zerolog.InfoLevel,
		OutputMode: 0644,
	}
}

// FromEnv applies environment overrides on top of base.
func FromEnv(base SimulaConfig, getenv func(string) string) (SimulaConfig, error) {
	cfg := base

	if v := getenv(EnvLogLevel); v != "" {
		level, err := zerolog.ParseLevel(v)
		if err != nil {
			return base, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if v := getenv(EnvOutputMode); v != "" {
		mode, err := strconv.ParseUint(v, 8, 32)
		if err != nil {
			return base, fmt.Errorf("%s: invalid octal file mode %q: %w", EnvOutputMode, v, err)
		}
		cfg.OutputMode = os.FileMode(mode) & os.ModePerm
	}

	return cfg, nil
}

func init() {
	cfg, err := FromEnv(Config, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring environment: %v\n", err)
		return
	}
	Config = cfg
}
