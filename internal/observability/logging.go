package observability

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/school-portal/internal/config"
)

// NewLogger creates the portal's structured zap.Logger. Every entry carries the
// service identity, the storage driver and the teacher login mode.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := loggerConfig(cfg).Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func loggerConfig(cfg *config.Config) zap.Config {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.Logger.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoding := "json"
	if strings.EqualFold(cfg.Logger.Format, "console") {
		encoding = "console"
	}
	output := cfg.Logger.Output
	if output == "" {
		output = "stdout"
	}

	teacherLogin := "open"
	if cfg.Auth.VerifyTeachers {
		teacherLogin = "verified"
	}

	zapCfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: cfg.App.Env == "development",
		Encoding:    encoding,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "message",
			LevelKey:   "level",
			TimeKey:    "ts",
			EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString(l.String())
			},
			EncodeTime: zapcore.ISO8601TimeEncoder,
		},
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"service":        cfg.App.Name,
			"version":        cfg.App.Version,
			"env":            cfg.App.Env,
			"storage_driver": cfg.Storage.Driver,
			"teacher_login":  teacherLogin,
		},
	}
	if !zapCfg.Development {
		// Sample repeated entries outside development.
		zapCfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}
	return zapCfg
}
