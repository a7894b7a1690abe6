// pattern: Imperative Shell

package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards everything. For tests and
// for code paths where logging is not configured.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{}
}

// TestManager is a LoggerProvider for tests: channel output only, no
// file, debug level.
type TestManager struct {
	channelSink *ChannelSink
	base        *zap.Logger
	loggers     map[string]*ScopedLogger
	mu          sync.RWMutex
}

// NewTestManager creates a channel-only manager.
func NewTestManager(bufferSize int) *TestManager {
	channelSink := NewChannelSink(bufferSize)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(channelSink),
		zapcore.DebugLevel,
	)

	return &TestManager{
		channelSink: channelSink,
		base:        zap.New(core),
		loggers:     make(map[string]*ScopedLogger),
	}
}

// For returns a scoped logger, cached per scope like the production
// manager.
func (m *TestManager) For(scope string) *ScopedLogger {
	m.mu.RLock()
	if logger, ok := m.loggers[scope]; ok {
		m.mu.RUnlock()
		return logger
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}

	logger := &ScopedLogger{sugar: m.base.Named(scope).Sugar(), scope: scope}
	m.loggers[scope] = logger
	return logger
}

// Entries returns the channel receiving log entries.
func (m *TestManager) Entries() <-chan Entry {
	return m.channelSink.Entries()
}

// Close closes the channel sink.
func (m *TestManager) Close() error {
	return m.channelSink.Close()
}
