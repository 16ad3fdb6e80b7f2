package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// 分位数常量
	percentile50 float64 = 0.5
	percentile90 float64 = 0.9
	percentile99 float64 = 0.99

	// 误差边界常量
	errorMargin50 float64 = 0.05
	errorMargin90 float64 = 0.01
	errorMargin99 float64 = 0.001
)

type Builder struct {
	// apiDurationSummary 跟踪 API 响应时间
	apiDurationSummary *prometheus.SummaryVec
	// requestCounter 跟踪请求总数
	requestCounter *prometheus.CounterVec
	// errorCounter 跟踪失败请求数
	errorCounter *prometheus.CounterVec
}

// NewBuilder 创建一个带有初始化指标的 Builder，指标注册到 reg 上
func NewBuilder(reg prometheus.Registerer) *Builder {
	factory := promauto.With(reg)
	return &Builder{
		apiDurationSummary: factory.NewSummaryVec(prometheus.SummaryOpts{
			Name: "grpc_server_handling_seconds",
			Help: "gRPC请求的响应延迟（秒）摘要。",
			Objectives: map[float64]float64{
				percentile50: errorMargin50,
				percentile90: errorMargin90,
				percentile99: errorMargin99,
			},
		}, []string{"method", "status_code"}),
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grpc_server_request_total",
				Help: "收到的gRPC请求总数。",
			}, []string{"method"},
		),
		errorCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grpc_server_errors_total",
				Help: "导致错误的gRPC请求总数。",
			}, []string{"method", "status"}),
	}
}

func (b *Builder) Build() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		// 记录开始时间
		startTime := time.Now()

		// 增加请求计数器
		b.requestCounter.WithLabelValues(info.FullMethod).Inc()

		// 处理请求
		resp, err := handler(ctx, req)

		// 计算持续时间
		duration := time.Since(startTime).Seconds()

		// 获取状态码
		code := status.Code(err)

		// 如果出现错误，则增加错误计数器
		if code != codes.OK {
			b.errorCounter.WithLabelValues(info.FullMethod, code.String()).Inc()
		}

		// 向 Prometheus 报告
		b.apiDurationSummary.WithLabelValues(info.FullMethod, code.String()).Observe(duration)
		return resp, err
	}
}
