package logger

import (
	"log"
	"post_service/internal/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log 全局日志实例，InitLogger 之前是 no-op
var Log = zap.NewNop()

// InitLogger 初始化 zap 日志
func InitLogger() {
	var cfg zap.Config
	if config.GlobalConfig.App.Debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	Log = l
	zap.ReplaceGlobals(l)
}

// Sync 刷新缓冲区，进程退出前调用
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// WarnBestEffort 记录 best-effort 调用失败。失败只记日志，不向调用方传播。
func WarnBestEffort(op string, err error, fields ...zap.Field) {
	if Log == nil || err == nil {
		return
	}
	Log.Warn("best-effort call failed",
		append([]zap.Field{zap.String("op", op), zap.Error(err)}, fields...)...)
}
