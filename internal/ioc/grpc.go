package ioc

import (
	"github.com/go-kratos/aegis/circuitbreaker/sre"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	igrpc "go-idgen/internal/api/grpc"
	"go-idgen/internal/api/grpc/interceptor/circuitbreaker"
	"go-idgen/internal/api/grpc/interceptor/jwt"
	"go-idgen/internal/api/grpc/interceptor/log"
	"go-idgen/internal/api/grpc/interceptor/metrics"
	"go-idgen/internal/api/grpc/interceptor/timeout"
	"go-idgen/internal/pkg/grpcx"
	"go-idgen/internal/pkg/logger"
	"go-idgen/internal/pkg/retry"
	"google.golang.org/grpc"
)

func InitGRPCServer(idServer *igrpc.IDGeneratorServer, l logger.Logger) *grpcx.Server {
	type Config struct {
		Port      int      `yaml:"port"`
		EtcdAddrs []string `yaml:"etcdAddrs"`
		EtcdTTL   int64    `yaml:"etcdTTL"`
		Name      string   `yaml:"name"`
		JwtKey    string   `yaml:"jwtKey"`

		// 启动时 etcd 可能还没就绪
		RegisterRetry retry.Config `yaml:"registerRetry"`
	}
	cfg := Config{Port: 8090, Name: "idgen"}
	err := viper.UnmarshalKey("grpc.server", &cfg)
	if err != nil {
		panic(err)
	}

	interceptors := make([]grpc.UnaryServerInterceptor, 0, 5)
	if cfg.JwtKey != "" {
		interceptors = append(interceptors, jwt.NewJwtAuth(cfg.JwtKey).JwtAuthInterceptor())
	}
	interceptors = append(interceptors,
		metrics.NewBuilder(prometheus.DefaultRegisterer).Build(),
		log.NewBuilder(l).Build(),
		circuitbreaker.NewBuilder(sre.NewBreaker()).Build(),
		timeout.TimeoutInterceptor(),
	)
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	idServer.Register(server)

	return &grpcx.Server{
		Server:        server,
		Port:          cfg.Port,
		EtcdAddrs:     cfg.EtcdAddrs,
		EtcdTTL:       cfg.EtcdTTL,
		Name:          cfg.Name,
		RegisterRetry: cfg.RegisterRetry,
		L:             l,
	}
}
