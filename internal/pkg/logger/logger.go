package logger

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	mu   sync.RWMutex
	base *zap.SugaredLogger = zap.NewNop().Sugar()
)

// Init собирает глобальный логгер. mode "prod" даёт JSON, иначе development.
func Init(level, mode string) error {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	mu.Lock()
	base = l.Sugar()
	mu.Unlock()
	return nil
}

func Sync() {
	_ = get(context.Background()).Sync()
}

// WithFields кладёт в контекст дочерний логгер с полями.
func WithFields(ctx context.Context, keysAndValues ...interface{}) context.Context {
	return context.WithValue(ctx, ctxKey{}, get(ctx).With(keysAndValues...))
}

func get(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
			return l
		}
	}
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Debugf(ctx context.Context, template string, args ...interface{}) {
	get(ctx).Debugf(template, args...)
}

func Infof(ctx context.Context, template string, args ...interface{}) {
	get(ctx).Infof(template, args...)
}

func Warnf(ctx context.Context, template string, args ...interface{}) {
	get(ctx).Warnf(template, args...)
}

func Errorf(ctx context.Context, template string, args ...interface{}) {
	get(ctx).Errorf(template, args...)
}

func Error(ctx context.Context, msg string) {
	get(ctx).Error(msg)
}

func Fatal(ctx context.Context, err error) {
	get(ctx).Fatal(err)
}
