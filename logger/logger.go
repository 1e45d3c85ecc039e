// Package logger provides module-scoped loggers for the capture tools.
package logger

import (
	"os"
	"strings"

	"github.com/op/go-logging"
)

const logFormat = "%{time:15:04:05.000} %{module} %{level:.4s} %{message}"

// NewLogger creates a logger for the given module at the given level.
// Unknown levels fall back to INFO.
func NewLogger(level string, module string) *logging.Logger {
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		lvl = logging.INFO
	}
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(logFormat))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, module)
	// IsEnabledFor and the log call fast path consult the package backend,
	// so the leveled backend must be installed globally.
	logging.SetBackend(leveled)

	return logging.MustGetLogger(module)
}
