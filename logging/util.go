package logging

import (
	"log/slog"
	"strings"
)

// LevelFromString parses "DEBUG", "INFO", "WARN" or "ERROR" in any case,
// falling back to INFO.
func LevelFromString(str *string) slog.Level {
	if str == nil {
		return slog.LevelInfo
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(*str))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
