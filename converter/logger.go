package converter

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the converter package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l := zap.NewNop()
	if logger.CompareAndSwap(nil, l) {
		return l
	}
	return logger.Load()
}

// SetLogger configures the converter package's logger. It is safe to call
// while converters are in use; Converters created afterwards without WithLogger
// use it. A nil logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
