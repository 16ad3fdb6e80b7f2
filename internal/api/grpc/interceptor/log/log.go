package log

import (
	"context"
	"time"

	"go-idgen/internal/api/grpc/interceptor/jwt"
	"go-idgen/internal/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Builder 日志拦截器构建器
type Builder struct {
	logger logger.Logger
}

func NewBuilder(l logger.Logger) *Builder {
	return &Builder{
		logger: l,
	}
}

func (b *Builder) Build() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		// 记录开始时间
		startTime := time.Now()

		b.logger.Debug("gRPC request",
			logger.String("method", info.FullMethod),
			logger.String("request", toJSON(req)))

		// 处理请求
		resp, err := handler(ctx, req)

		// 计算请求处理时间
		duration := time.Since(startTime)

		// 获取状态码
		statusCode := status.Code(err)
		caller := jwt.CallerFromContext(ctx)

		if err != nil {
			// 如果有错误，记录错误日志
			b.logger.Error("gRPC response with error",
				logger.String("method", info.FullMethod),
				logger.String("caller", caller),
				logger.String("status_code", statusCode.String()),
				logger.Duration("duration", duration),
				logger.Error(err))
		} else {
			// 记录成功响应
			b.logger.Info("gRPC response",
				logger.String("method", info.FullMethod),
				logger.String("caller", caller),
				logger.String("status_code", statusCode.String()),
				logger.String("response", toJSON(resp)),
				logger.Duration("duration", duration))
		}
		return resp, err
	}
}

func toJSON(v any) string {
	msg, ok := v.(proto.Message)
	if !ok {
		return ""
	}
	data, err := protojson.Marshal(msg)
	if err != nil {
		return ""
	}
	return string(data)
}
