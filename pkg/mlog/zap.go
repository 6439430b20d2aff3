package mlog

import (
	"fmt"

	"go.uber.org/zap"
)

// ZapLogger adapts *zap.SugaredLogger to the Logger interface.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a production zap logger (JSON encoding, epoch
// seconds timestamps under the "timestamp" key).
func NewZapLogger() (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("building zap logger: %w", err)
	}

	return &ZapLogger{sugar: base.Sugar()}, nil
}

func (l *ZapLogger) Info(args ...any)          { l.sugar.Info(args...) }
func (l *ZapLogger) Infof(f string, a ...any)  { l.sugar.Infof(f, a...) }
func (l *ZapLogger) Warn(args ...any)          { l.sugar.Warn(args...) }
func (l *ZapLogger) Warnf(f string, a ...any)  { l.sugar.Warnf(f, a...) }
func (l *ZapLogger) Error(args ...any)         { l.sugar.Error(args...) }
func (l *ZapLogger) Errorf(f string, a ...any) { l.sugar.Errorf(f, a...) }
func (l *ZapLogger) Debug(args ...any)         { l.sugar.Debug(args...) }
func (l *ZapLogger) Debugf(f string, a ...any) { l.sugar.Debugf(f, a...) }

func (l *ZapLogger) WithFields(fields ...any) Logger {
	return &ZapLogger{sugar: l.sugar.With(fields...)}
}

func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
