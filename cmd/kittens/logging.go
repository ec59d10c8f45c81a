package main

import (
	"os"

	"github.com/charmbracelet/log"
)

// setupLogger configures console logging. The debug flag wins over the
// configured level.
func setupLogger(debug bool, level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
