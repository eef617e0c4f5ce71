// Package logging configures the structured logger used by the command-line tool and adapts it
// to the framework.Logger interface that the mock server expects.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fledge-tests/fledge-mockserver/framework"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// Options controls where log output goes.
type Options struct {
	Debug bool

	// LogFile, if set, receives a copy of all output, rotated by size.
	LogFile       string
	MaxSizeMB     int
	MaxBackups    int
	MaxAgeDays    int
	CompressFiles bool

	// Console is where human-readable output goes; the default is stderr.
	Console io.Writer
}

// NewLogger builds a zerolog logger from the options.
func NewLogger(opts Options) zerolog.Logger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	var output io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: time.TimeOnly}
	if opts.LogFile != "" {
		fileLogger := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.CompressFiles,
		}
		output = zerolog.MultiLevelWriter(output, fileLogger)
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

type zerologAdapter struct {
	logger zerolog.Logger
	level  zerolog.Level
}

func (a zerologAdapter) Printf(message string, args ...interface{}) {
	a.logger.WithLevel(a.level).Msg(fmt.Sprintf(message, args...))
}

// AsFrameworkLogger returns a framework.Logger that writes every message to logger at the
// given level.
func AsFrameworkLogger(logger zerolog.Logger, level zerolog.Level) framework.Logger {
	return zerologAdapter{logger: logger, level: level}
}

// ForComponent returns a framework.Logger, logging at info level, for one named component such
// as a peer server.
func ForComponent(logger zerolog.Logger, component string) framework.Logger {
	return AsFrameworkLogger(logger.With().Str("component", component).Logger(), zerolog.InfoLevel)
}
