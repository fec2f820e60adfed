package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"git.lost.host/meutraa/runbeat/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init builds the game logger. Logs always go to a rotating JSON file, since the
// terminal belongs to the renderer; console adds a readable copy on stderr.
func Init(s config.LoggingSettings, level string, console bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if nil != err {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if err := os.MkdirAll(s.Directory, 0o755); nil != err {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(s.Directory, "runbeat.log"),
		MaxSize:    s.MaxSize,
		MaxBackups: s.MaxBackups,
		MaxAge:     s.MaxAge,
		Compress:   s.Compress,
	}

	cores := []zapcore.Core{newFileCore(writer, lvl)}
	if console {
		cores = append(cores, newConsoleCore(os.Stderr, lvl))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func newFileCore(w io.Writer, level zapcore.Level) zapcore.Core {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		TimeKey:      "time",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	return zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
}

func newConsoleCore(w io.Writer, level zapcore.Level) zapcore.Core {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
}
