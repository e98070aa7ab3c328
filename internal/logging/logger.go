package logging

import (
	"log/slog"
	"os"
)

// Setup installs the stdout JSON logger as the slog default.
func Setup(appEnv string) {
	slog.SetDefault(slog.New(StdoutHandler(appEnv)))
}

// StdoutHandler logs JSON to stdout. Development builds include debug records.
func StdoutHandler(appEnv string) slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFor(appEnv),
	})
}

func levelFor(appEnv string) slog.Level {
	if appEnv == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
