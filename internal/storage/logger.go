package storage

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the storage package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger configures the storage package's logger. It takes effect for
// every later log call, including those of already opened storages. A nil
// logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
