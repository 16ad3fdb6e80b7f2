//go:build wireinject

package main

import (
	"github.com/google/wire"
	igrpc "go-idgen/internal/api/grpc"
	"go-idgen/internal/ioc"
	"go-idgen/internal/web/id"
)

func InitApp() *ioc.App {
	wire.Build(
		ioc.InitLogger,
		ioc.InitZipkinTracer,

		ioc.InitIDGeneratorConfig,
		ioc.InitIDGenerator,
		ioc.InitIDService,

		igrpc.NewIDGeneratorServer,
		ioc.InitGRPCServer,

		id.NewHandler,
		ioc.InitGinServer,

		ioc.InitClockMonitor,
		ioc.InitCron,

		wire.Struct(new(ioc.App), "*"),
	)
	return new(ioc.App)
}
