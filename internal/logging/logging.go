package logging

import (
	"io"
	"os"
	"time"

	"github.com/faanross/simulacra_png/internal/config"
	"github.com/faanross/simulacra_png/internal/oops"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.ErrorStackMarshaler = oops.ZerologStackMarshaler
	log.Logger = zerolog.New(NewConsoleWriter(os.Stderr)).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(config.Config.LogLevel)
}

func NewConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
	}
}

// SetLevel changes the global log level, e.g. after flags are parsed.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

func GlobalLogger() *zerolog.Logger {
	return &log.Logger
}

func Trace() *zerolog.Event {
	return log.Trace()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

// Error logs with the error's call stack attached when it has one.
func Error() *zerolog.Event {
	return log.Error().Stack()
}

func With() zerolog.Context {
	return log.With()
}
