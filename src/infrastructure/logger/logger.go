package logger

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// Logger wraps a zap logger so the rest of the application does not depend on
// zap directly
type Logger struct {
	Log *zap.Logger
}

// NewLogger creates a production JSON logger
func NewLogger() (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{Log: log}, nil
}

// NewDevelopmentLogger creates a console logger for local development
func NewDevelopmentLogger() (*Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{Log: log}, nil
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.Log.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.Log.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.Log.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.Log.Error(msg, fields...) }
func (l *Logger) Panic(msg string, fields ...zap.Field) { l.Log.Panic(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...zap.Field) { l.Log.Fatal(msg, fields...) }

// GinZapLogger returns a gin middleware that logs requests through zap
func (l *Logger) GinZapLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		l.Log.Info("request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// SetupGinWithZapLogger disables gin's own writers in production mode
func (l *Logger) SetupGinWithZapLogger() {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = zap.NewStdLog(l.Log).Writer()
	gin.DefaultErrorWriter = zap.NewStdLog(l.Log).Writer()
}

// SetupGinWithZapLoggerInDevelopment keeps gin in debug mode but routes its
// output through zap
func (l *Logger) SetupGinWithZapLoggerInDevelopment() {
	gin.SetMode(gin.DebugMode)
	gin.DefaultWriter = zap.NewStdLog(l.Log).Writer()
	gin.DefaultErrorWriter = zap.NewStdLog(l.Log).Writer()
}

// GormLogger adapts zap to gorm's logger interface
type GormLogger struct {
	log           *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a gorm logger backed by the given zap logger
func NewGormLogger(log *zap.Logger) *GormLogger {
	return &GormLogger{
		log:           log,
		level:         gormlogger.Warn,
		slowThreshold: 200 * time.Millisecond,
	}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Info {
		g.log.Sugar().Infof(msg, data...)
	}
}

func (g *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.log.Sugar().Warnf(msg, data...)
	}
}

func (g *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Error {
		g.log.Sugar().Errorf(msg, data...)
	}
}

func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		g.log.Error("gorm query failed", zap.Error(err), zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	case elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		g.log.Warn("gorm slow query", zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	case g.level >= gormlogger.Info:
		g.log.Info("gorm query", zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	}
}
