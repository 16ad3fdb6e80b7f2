package tracing

import (
	"context"

	"go-idgen/internal/domain"
	"go-idgen/internal/service/idgen"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ idgen.Service = (*Service)(nil)

// Service 为发号服务添加链路追踪的装饰器
type Service struct {
	svc    idgen.Service
	tracer trace.Tracer
}

func NewService(svc idgen.Service) *Service {
	return &Service{
		svc:    svc,
		tracer: otel.Tracer("go-idgen/service/idgen"),
	}
}

func (s *Service) NextID(ctx context.Context) (domain.ID, error) {
	ctx, span := s.tracer.Start(ctx, "IDService.NextID")
	defer span.End()

	id, err := s.svc.NextID(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return id, err
	}
	span.SetAttributes(attribute.String("idgen.id", id.String()))
	return id, nil
}

func (s *Service) BatchNextID(ctx context.Context, count int) ([]domain.ID, error) {
	ctx, span := s.tracer.Start(ctx, "IDService.BatchNextID",
		trace.WithAttributes(attribute.Int("idgen.count", count)))
	defer span.End()

	ids, err := s.svc.BatchNextID(ctx, count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ids, err
	}
	if len(ids) > 0 {
		span.SetAttributes(
			attribute.String("idgen.first_id", ids[0].String()),
			attribute.String("idgen.last_id", ids[len(ids)-1].String()),
		)
	}
	return ids, nil
}

func (s *Service) Decode(ctx context.Context, id domain.ID) (domain.IDParts, error) {
	ctx, span := s.tracer.Start(ctx, "IDService.Decode",
		trace.WithAttributes(attribute.String("idgen.id", id.String())))
	defer span.End()

	parts, err := s.svc.Decode(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return parts, err
}
