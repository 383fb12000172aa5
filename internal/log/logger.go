package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)
	// With returns a child logger, fields are added to every message.
	With(fields ...zap.Field) Logger
	Sync() error
}

// zapLogger is default implementation of the Logger interface.
// It is wrapped zap.SugaredLogger.
type zapLogger struct {
	*zap.SugaredLogger
}

func loggerFromZap(l *zap.Logger) *zapLogger {
	return &zapLogger{SugaredLogger: l.Sugar()}
}

// NewLogger writes messages of at least the given level to w.
func NewLogger(w io.Writer, level zapcore.Level, format Format) Logger {
	core := zapcore.NewCore(encoder(format), zapcore.Lock(zapcore.AddSync(w)), level)
	return loggerFromZap(zap.New(core))
}

// NewNopLogger discards everything.
func NewNopLogger() Logger {
	return loggerFromZap(zap.NewNop())
}

func (l *zapLogger) With(fields ...zap.Field) Logger {
	return loggerFromZap(l.Desugar().With(fields...))
}

func encoder(format Format) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == FormatJSON {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
