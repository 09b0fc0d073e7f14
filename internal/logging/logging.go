// Package logging builds the zap loggers used by the command line tools and
// turns download progress events into structured log entries.
package logging

import (
	"fmt"

	"github.com/handiism/exercices-downloader/internal/download"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config represents the logger configuration.
type Config struct {
	// Verbose lowers the level to debug and adds caller information.
	Verbose bool
	// OutputPaths is a list of URLs or file paths to write logging output to.
	// Defaults to stderr.
	OutputPaths []string
}

// New creates a console logger.
func New(cfg Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapCfg.DisableStacktrace = true
	zapCfg.Sampling = nil

	if cfg.Verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zapCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	} else {
		zapCfg.DisableCaller = true
	}

	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		zapCfg.OutputPaths = []string{"stderr"}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// ProgressFunc returns a progress callback that logs every event.
//
// Verbose events are logged at debug, info and success at info, warnings at
// warn and errors at error.
func ProgressFunc(logger *zap.Logger) func(download.ProgressEvent) {
	return func(event download.ProgressEvent) {
		fields := Fields(event)

		switch event.Level {
		case download.LevelVerbose:
			logger.Debug(event.Message, fields...)
		case download.LevelWarning:
			logger.Warn(event.Message, fields...)
		case download.LevelError:
			logger.Error(event.Message, fields...)
		default:
			logger.Info(event.Message, fields...)
		}
	}
}

// Fields returns the structured context of an event, skipping empty values.
func Fields(event download.ProgressEvent) []zap.Field {
	var fields []zap.Field

	if event.Year != "" {
		fields = append(fields, zap.String("year", event.Year))
	}
	if event.Subject != "" {
		fields = append(fields, zap.String("subject", event.Subject))
	}
	if event.Quarter > 0 {
		fields = append(fields, zap.Int("quarter", event.Quarter))
	}
	if event.Difficulty != "" {
		fields = append(fields, zap.String("difficulty", string(event.Difficulty)))
	}
	if event.URL != "" {
		fields = append(fields, zap.String("url", event.URL))
	}
	if event.Path != "" {
		fields = append(fields, zap.String("path", event.Path))
	}
	if event.Err != nil {
		fields = append(fields, zap.Error(event.Err))
	}

	return fields
}
