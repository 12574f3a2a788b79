package app

import (
	"os"

	"oasis-blood-platform/internal/config"
	"oasis-blood-platform/internal/logx"
)

// NewLogger returns a JSON logger on stdout at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.NewJSON(os.Stdout, logx.ParseLevel(cfg.LogLevel))
}
