// Package logging wraps a zap.SugaredLogger behind a package-level
// logger used by the driver, the code generator, and the VM. Fatal
// compile/VM errors are always printed to stderr separately per the
// required single-line diagnostic format; this package only carries
// the optional structured trace output gated behind -v/--verbose.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger = newLogger()
)

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.EncoderConfig.TimeKey = ""
	built, err := cfg.Build()
	if err != nil {
		// Falling back to a no-op core keeps the rest of the package
		// usable even if zap's own setup somehow fails.
		built = zap.New(zapcore.NewNopCore())
	}
	return built.Sugar()
}

// SetVerbose raises the logger to debug level when v is true, and back
// to info level otherwise.
func SetVerbose(v bool) {
	if v {
		level.SetLevel(zap.DebugLevel)
	} else {
		level.SetLevel(zap.InfoLevel)
	}
}

// Debugf logs a formatted message at debug level - used by the code
// generator (literal-tier selection, hole patching) and the VM (ICALL/
// IRET pairs, taken jumps) when -v is given.
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Sync flushes any buffered log entries; the driver calls this once on
// exit.
func Sync() {
	_ = logger.Sync()
}
