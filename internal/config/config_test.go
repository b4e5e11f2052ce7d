package config

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv(t *testing.T) {
	items := []struct {
		name  string
		env   map[string]string
		level zerolog.Level
		mode  os.FileMode
		ok    bool
	}{
		{"defaults", nil, zerolog.InfoLevel, 0644, true},
		{"debug", map[string]string{EnvLogLevel: "debug"}, zerolog.DebugLevel, 0644, true},
		{"mode", map[string]string{EnvOutputMode: "600"}, zerolog.InfoLevel, 0600, true},
		{"bad level", map[string]string{EnvLogLevel: "loud"}, zerolog.InfoLevel, 0644, false},
		{"bad mode", map[string]string{EnvOutputMode: "rw"}, zerolog.InfoLevel, 0644, false},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			cfg, err := FromEnv(Default(), env(item.env))
			if !item.ok {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, item.level, cfg.LogLevel)
			assert.Equal(t, item.mode, cfg.OutputMode)
		})
	}
}
