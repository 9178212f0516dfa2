// Package logutil constructs the package loggers. The library is
// silent by default; setting AMPSIM_DEBUG raises every logger obtained
// here to DEBUG.
package logutil

import (
	"os"

	"github.com/juju/loggo"
)

// GetLogger returns the named logger, at DEBUG when AMPSIM_DEBUG is a
// non-empty value other than "0".
func GetLogger(name string) loggo.Logger {
	logger := loggo.GetLogger(name)
	if v := os.Getenv("AMPSIM_DEBUG"); v != "" && v != "0" {
		logger.SetLogLevel(loggo.DEBUG)
	}
	return logger
}
