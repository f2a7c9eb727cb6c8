package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger zap 日志实现.
type zapLogger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
	file   *os.File
}

// newZapLogger 创建 zap logger，w 非空时覆盖配置中的输出目标.
func newZapLogger(config *Config, w io.Writer) (Logger, error) {
	var (
		sink zapcore.WriteSyncer
		file *os.File
	)

	switch {
	case w != nil:
		sink = zapcore.AddSync(w)
	case strings.EqualFold(config.Output, OutputStderr):
		sink = zapcore.Lock(os.Stderr)
	case strings.EqualFold(config.Output, OutputFile):
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
			return nil, &ConfigError{Field: "file_path", Message: "failed to create log directory: " + err.Error()}
		}
		f, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, &ConfigError{Field: "file_path", Message: "failed to open log file: " + err.Error()}
		}
		file = f
		sink = zapcore.AddSync(f)
	default:
		sink = zapcore.Lock(os.Stdout)
	}

	core := zapcore.NewCore(buildEncoder(config), sink, parseLevel(config.Level))

	var options []zap.Option
	if config.Caller {
		options = append(options, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if config.Stacktrace {
		options = append(options, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	zapLog := zap.New(core, options...).With(zap.String("service", config.Name))

	return &zapLogger{
		logger: zapLog,
		sugar:  zapLog.Sugar(),
		file:   file,
	}, nil
}

// buildEncoder 构建编码器.
func buildEncoder(config *Config) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = config.Encoder.TimeKey
	cfg.MessageKey = config.Encoder.MessageKey
	cfg.EncodeTime = timeEncoder(config.Encoder.TimeFormat)
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	if strings.EqualFold(config.Format, FormatConsole) {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.ConsoleSeparator = "\t"
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}

// timeEncoder 获取时间编码器.
func timeEncoder(format string) zapcore.TimeEncoder {
	switch strings.ToLower(format) {
	case TimeFormatISO8601:
		return zapcore.ISO8601TimeEncoder
	case TimeFormatRFC3339:
		return zapcore.RFC3339TimeEncoder
	case TimeFormatEpoch:
		return zapcore.EpochTimeEncoder
	case TimeFormatDateTime:
		return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("2006-01-02 15:04:05"))
		}
	default:
		return zapcore.TimeEncoderOfLayout(format)
	}
}

// parseLevel 解析日志级别.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn, "warning":
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (z *zapLogger) Debug(args ...any)                 { z.sugar.Debug(args...) }
func (z *zapLogger) Debugf(format string, args ...any) { z.sugar.Debugf(format, args...) }
func (z *zapLogger) Info(args ...any)                  { z.sugar.Info(args...) }
func (z *zapLogger) Infof(format string, args ...any)  { z.sugar.Infof(format, args...) }
func (z *zapLogger) Warn(args ...any)                  { z.sugar.Warn(args...) }
func (z *zapLogger) Warnf(format string, args ...any)  { z.sugar.Warnf(format, args...) }
func (z *zapLogger) Error(args ...any)                 { z.sugar.Error(args...) }
func (z *zapLogger) Errorf(format string, args ...any) { z.sugar.Errorf(format, args...) }

// With 返回带有附加字段的 logger.
func (z *zapLogger) With(fields ...Field) Logger {
	zapFields := make([]zap.Field, len(fields))
	for i, f := range fields {
		zapFields[i] = toZapField(f)
	}

	newLogger := z.logger.With(zapFields...)
	return &zapLogger{
		logger: newLogger,
		sugar:  newLogger.Sugar(),
		file:   z.file,
	}
}

// toZapField 将 Field 转换为 zap.Field.
func toZapField(f Field) zap.Field {
	switch v := f.Value.(type) {
	case string:
		return zap.String(f.Key, v)
	case int:
		return zap.Int(f.Key, v)
	case int64:
		return zap.Int64(f.Key, v)
	case float64:
		return zap.Float64(f.Key, v)
	case bool:
		return zap.Bool(f.Key, v)
	case time.Duration:
		return zap.Duration(f.Key, v)
	case error:
		return zap.NamedError(f.Key, v)
	default:
		return zap.Any(f.Key, v)
	}
}

// WithContext 返回带有 context 中 trace 信息的 logger.
//
// context 中没有 trace 信息时返回当前 logger.
func (z *zapLogger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return z
	}

	var fields []Field
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		fields = append(fields, Field{Key: "traceId", Value: traceID})
	}
	if spanID, ok := ctx.Value(SpanIDKey).(string); ok && spanID != "" {
		fields = append(fields, Field{Key: "spanId", Value: spanID})
	}
	if len(fields) == 0 {
		return z
	}
	return z.With(fields...)
}

// Sync 同步日志缓冲区.
func (z *zapLogger) Sync() error {
	return z.logger.Sync()
}

// Close 关闭 logger 并释放资源.
func (z *zapLogger) Close() error {
	// stdout/stderr 的 sync 错误忽略: https://github.com/uber-go/zap/issues/328
	_ = z.logger.Sync()
	if z.file != nil {
		return z.file.Close()
	}
	return nil
}
