package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/lumberjack.v2"

	"github.com/vietanh2810/meetup-api/internal/config"
)

var level = zap.NewAtomicLevel()

// Init builds the global zap logger. Production writes JSON, everything else
// writes colored console output. When conf.File is set, log lines are also
// written to a rotating file.
func Init(env string, conf *config.LogConfig) error {
	if conf == nil {
		conf = &config.LogConfig{Level: "info"}
	}

	if err := SetLevel(conf.Level); err != nil {
		return err
	}

	var encoder zapcore.Encoder
	if env == config.EnvProduction {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}

	if conf.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    conf.MaxSizeMB,
			MaxBackups: conf.MaxBackups,
			MaxAge:     conf.MaxAgeDays,
			Compress:   true,
		}
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(rotator), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the minimum level of the global logger in place.
func SetLevel(lvl string) error {
	if lvl == "" {
		lvl = "info"
	}

	if err := level.UnmarshalText([]byte(lvl)); err != nil {
		return fmt.Errorf("invalid log level %q -> %w", lvl, err)
	}

	return nil
}

func Level() zapcore.Level {
	return level.Level()
}
