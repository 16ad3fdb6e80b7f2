package circuitbreaker

import (
	"context"

	"github.com/go-kratos/aegis/circuitbreaker"
	"go-idgen/internal/errs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Builder struct {
	breaker circuitbreaker.CircuitBreaker
}

func NewBuilder(breaker circuitbreaker.CircuitBreaker) *Builder {
	return &Builder{breaker: breaker}
}

// Build 时钟持续回拨的时候每次发号都会失败，熔断之后直接拒绝，避免调用方不停重试
func (b *Builder) Build() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		err = b.breaker.Allow()
		if err != nil {
			b.breaker.MarkFailed()
			return nil, status.Errorf(codes.Unavailable, "%s", errs.ErrCircuitBreaker)
		}

		resp, err = handler(ctx, req)

		// 只有服务端故障才算失败，参数错误不影响熔断
		switch status.Code(err) {
		case codes.Unavailable, codes.Internal:
			b.breaker.MarkFailed()
		default:
			b.breaker.MarkSuccess()
		}
		return
	}
}
