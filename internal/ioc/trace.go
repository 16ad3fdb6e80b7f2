package ioc

import (
	"time"

	"github.com/spf13/viper"
	"go-idgen/internal/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// InitZipkinTracer 初始化 tracer provider 并设置为全局的。
// 没有配置 zipkin 地址的时候只在进程内生成 span，不导出
func InitZipkinTracer(l logger.Logger) *trace.TracerProvider {
	type Config struct {
		Endpoint    string `yaml:"endpoint"`
		ServiceName string `yaml:"serviceName"`
	}
	cfg := Config{ServiceName: "idgen"}
	if err := viper.UnmarshalKey("trace.zipkin", &cfg); err != nil {
		panic(err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	otel.SetTextMapPropagator(newPropagator())

	opts := []trace.TracerProviderOption{trace.WithResource(res)}
	if cfg.Endpoint != "" {
		exporter, err := zipkin.New(cfg.Endpoint)
		if err != nil {
			panic(err)
		}
		opts = append(opts, trace.WithBatcher(exporter, trace.WithBatchTimeout(time.Second)))
	} else {
		l.Warn("没有配置 zipkin 地址，链路数据不会导出")
	}
	tp := trace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp
}

// newPropagator 创建上下文传播器
func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String("v0.0.1"),
		),
	)
}
