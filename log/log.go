package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dszqbsm/dikicrawler/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Plugin = zapcore.Core

func NewLogger(plugin zapcore.Core, options ...zap.Option) *zap.Logger {
	return zap.New(plugin, append(DefaultOption(), options...)...)
}

func NewPlugin(writer zapcore.WriteSyncer, enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(DefaultEncoder(), writer, enabler)
}

func NewStdoutPlugin(enabler zapcore.LevelEnabler) Plugin {
	return NewPlugin(zapcore.Lock(zapcore.AddSync(os.Stdout)), enabler)
}

// NewStderrPlugin logs in console form, leaving stdout to the command output.
func NewStderrPlugin(enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(ConsoleEncoder(), zapcore.Lock(zapcore.AddSync(os.Stderr)), enabler)
}

/*
Input: a log file path and a level filter. Output: the plugin and a closer.

lumberjack does not expose Sync, so the closer must be closed before the process exits to
flush the file.
*/
func NewFilePlugin(filePath string, enabler zapcore.LevelEnabler) (Plugin, io.Closer) {
	var writer = DefaultLumberjackLogger()
	writer.Filename = filePath
	return NewPlugin(zapcore.AddSync(writer), enabler), writer
}

// NewTeePlugin writes every entry to all plugins.
func NewTeePlugin(plugins ...Plugin) Plugin {
	return zapcore.NewTee(plugins...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

/*
Input: the log section of the config. Output: a logger, the closer of its file and an error.

The logger always writes to stdout. With a file configured it also writes there, through
a rotating lumberjack writer.
*/
func Setup(cfg config.Log) (*zap.Logger, io.Closer, error) {
	level := cfg.Level
	if level == "" {
		level = "INFO"
	}
	logLevel, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level:%w", err)
	}

	plugin := NewStdoutPlugin(logLevel)
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		var filePlugin Plugin
		filePlugin, closer = NewFilePlugin(cfg.File, logLevel)
		plugin = NewTeePlugin(plugin, filePlugin)
	}

	return NewLogger(plugin), closer, nil
}
