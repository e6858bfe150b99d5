package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

const (
	FlagLogLevel  = "loglevel"
	FlagLogFormat = "logformat"
)

var logLevels = []string{"debug", "info", "warn", "error"}

func RegisterLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(FlagLogLevel, "warn", "set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String(FlagLogFormat, "text", "set the log format (text, json)")
}

// GetBaseLogger builds a logger writing to the command's error stream, so
// logs never mix with printed requirements.
func GetBaseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	logLevel, err := GetLoggerLevel(cmd)
	if err != nil {
		return nil, err
	}

	format, err := cmd.Flags().GetString(FlagLogFormat)
	if err != nil {
		return nil, err
	}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: logLevel,
		})
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: logLevel,
		})
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	return slog.New(handler), nil
}

func GetLoggerLevel(cmd *cobra.Command) (slog.Level, error) {
	logLevel, err := cmd.Flags().GetString(FlagLogLevel)
	if err != nil {
		return slog.LevelWarn, err
	}
	if !slices.Contains(logLevels, logLevel) {
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", logLevel)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", logLevel)
	}
	return level, nil
}
