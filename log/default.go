package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultEncoderConfig names the time field "time" and writes it as ISO8601, with capital levels.
func DefaultEncoderConfig() zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return encoderConfig
}

// DefaultEncoder writes one json object per entry. The crawl log and its file use it.
func DefaultEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(DefaultEncoderConfig())
}

// ConsoleEncoder is for the one-shot commands whose log goes to a terminal next to their output.
func ConsoleEncoder() zapcore.Encoder {
	encoderConfig := DefaultEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encoderConfig.EncodeCaller = nil
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func DefaultOption() []zap.Option {
	panicsOnly := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level >= zapcore.DPanicLevel
	})
	return []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(panicsOnly),
	}
}

// DefaultLumberjackLogger keeps five compressed 50MB files for at most 30 days.
func DefaultLumberjackLogger() *lumberjack.Logger {
	return &lumberjack.Logger{
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		LocalTime:  true,
		Compress:   true,
	}
}
