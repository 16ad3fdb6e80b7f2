package ioc

import (
	"github.com/robfig/cron/v3"
	"go-idgen/internal/pkg/ginx"
	"go-idgen/internal/pkg/grpcx"
	"go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	GrpcServer *grpcx.Server
	WebServer  *ginx.Server
	Cron       *cron.Cron
	Tracer     *trace.TracerProvider
}
