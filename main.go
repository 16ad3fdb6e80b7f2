package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	initViper()
	app := InitApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Cron.Start()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return app.GrpcServer.Serve()
	})
	eg.Go(func() error {
		return app.WebServer.Start()
	})
	eg.Go(func() error {
		<-ctx.Done()
		zap.L().Info("开始退出")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// 等正在跑的巡检结束
		<-app.Cron.Stop().Done()
		err := app.WebServer.Shutdown(shutdownCtx)
		if er := app.GrpcServer.Close(); er != nil && err == nil {
			err = er
		}
		if er := app.Tracer.Shutdown(shutdownCtx); er != nil && err == nil {
			err = er
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		zap.L().Error("服务异常退出", zap.Error(err))
		os.Exit(1)
	}
	zap.L().Info("服务已退出")
}

func initViper() {
	cfile := pflag.String("config", "config/dev.yaml", "配置文件路径")
	pflag.Parse()
	viper.SetConfigFile(*cfile)
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}
}
