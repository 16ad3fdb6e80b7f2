package ioc

import (
	"github.com/spf13/viper"
	"go-idgen/internal/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func InitLogger() logger.Logger {
	type Config struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	}
	cfg := Config{Level: "info"}
	if err := viper.UnmarshalKey("log", &cfg); err != nil {
		panic(err)
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		panic(err)
	}
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	l, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	// ginx 里直接用 zap.L()
	zap.ReplaceGlobals(l)
	return logger.NewZapLogger(l)
}
