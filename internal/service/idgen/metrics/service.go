package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go-idgen/internal/domain"
	"go-idgen/internal/errs"
	"go-idgen/internal/pkg/id_generator"
	"go-idgen/internal/service/idgen"
)

const (
	// 摘要指标的分位数配置
	median = 0.5
	p90    = 0.9
	p99    = 0.99

	medianError = 0.05
	p90Error    = 0.01
	p99Error    = 0.001

	// 摘要指标的最大保留时间
	maxAgeDuration = 5 * time.Minute

	statusOK              = "ok"
	statusClockRolledBack = "clock_rolled_back"
	statusInvalidArgument = "invalid_argument"
	statusError           = "error"
)

var _ idgen.Service = (*Service)(nil)

// Service 为发号服务添加指标收集的装饰器
type Service struct {
	svc             idgen.Service
	durationSummary *prometheus.SummaryVec
	requestCounter  *prometheus.CounterVec
	issuedCounter   prometheus.Counter
}

func NewService(svc idgen.Service, reg prometheus.Registerer) *Service {
	durationSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "idgen_service_duration_seconds",
			Help: "发号服务耗时统计（秒）",
			Objectives: map[float64]float64{
				median: medianError,
				p90:    p90Error,
				p99:    p99Error,
			},
			MaxAge: maxAgeDuration,
		},
		[]string{"method", "status"},
	)
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idgen_service_request_total",
			Help: "发号服务调用次数",
		},
		[]string{"method", "status"},
	)
	issuedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "idgen_issued_total",
		Help: "成功发出的 ID 总数",
	})

	reg.MustRegister(durationSummary, requestCounter, issuedCounter)

	return &Service{
		svc:             svc,
		durationSummary: durationSummary,
		requestCounter:  requestCounter,
		issuedCounter:   issuedCounter,
	}
}

func (s *Service) NextID(ctx context.Context) (domain.ID, error) {
	start := time.Now()
	id, err := s.svc.NextID(ctx)
	s.observe("NextID", start, err)
	if err == nil {
		s.issuedCounter.Inc()
	}
	return id, err
}

func (s *Service) BatchNextID(ctx context.Context, count int) ([]domain.ID, error) {
	start := time.Now()
	ids, err := s.svc.BatchNextID(ctx, count)
	s.observe("BatchNextID", start, err)
	s.issuedCounter.Add(float64(len(ids)))
	return ids, err
}

func (s *Service) Decode(ctx context.Context, id domain.ID) (domain.IDParts, error) {
	start := time.Now()
	parts, err := s.svc.Decode(ctx, id)
	s.observe("Decode", start, err)
	return parts, err
}

func (s *Service) observe(method string, start time.Time, err error) {
	status := statusOf(err)
	s.requestCounter.WithLabelValues(method, status).Inc()
	s.durationSummary.WithLabelValues(method, status).Observe(time.Since(start).Seconds())
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, id_generator.ErrClockRolledBack):
		return statusClockRolledBack
	case errors.Is(err, errs.ErrInvalidBatchSize), errors.Is(err, errs.ErrInvalidID):
		return statusInvalidArgument
	default:
		return statusError
	}
}
