package emeeprom

import "go.uber.org/zap"

// withLogger normalizes a caller-supplied logger: nil becomes a no-op
// logger so call sites never have to nil-check before logging.
func withLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
