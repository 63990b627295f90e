package main

import(
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":     return slog.LevelDebug, nil
	case "info", "":  return slog.LevelInfo, nil
	case "warn":      return slog.LevelWarn, nil
	case "error":     return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%s: invalid log level", level)
}

// newLogger logs JSON to a rotated file if one is named, else text to stderr.
func newLogger(file, level string) (*slog.Logger, io.Closer, error) {
	lvl,err := parseLevel(level)
	if err != nil { return nil, nil, err }
	opts := &slog.HandlerOptions{Level: lvl}

	if file == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), io.NopCloser(nil), nil
	}

	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    32, // MB
		MaxBackups: 3,
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(w, opts)), w, nil
}
