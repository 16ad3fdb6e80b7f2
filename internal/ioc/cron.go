package ioc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go-idgen/internal/pkg/id_generator"
	"go-idgen/internal/pkg/logger"
	"go-idgen/internal/service/idgen"
)

func InitClockMonitor(gen idgen.Generator, cfg IDGeneratorConfig, l logger.Logger) *idgen.ClockMonitor {
	return idgen.NewClockMonitor(gen, id_generator.SystemClock{}, cfg.RollbackTolerance,
		prometheus.DefaultRegisterer, l)
}

func InitCron(monitor *idgen.ClockMonitor, l logger.Logger) *cron.Cron {
	type Config struct {
		ClockMonitor string `yaml:"clockMonitor"`
	}
	cfg := Config{ClockMonitor: "@every 10s"}
	if err := viper.UnmarshalKey("cron", &cfg); err != nil {
		panic(err)
	}
	c := cron.New(cron.WithSeconds())
	_, err := c.AddJob(cfg.ClockMonitor, monitor)
	if err != nil {
		panic(err)
	}
	l.Info("时钟巡检任务已注册", logger.String("spec", cfg.ClockMonitor))
	return c
}
