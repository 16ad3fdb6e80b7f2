package timeout

import (
	"context"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// TimeoutInterceptor 从 metadata 里恢复调用方的截止时间
func TimeoutInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return handler(ctx, req) // 无 metadata 则透传
		}

		timeoutValues := md.Get(timeoutKey)
		if len(timeoutValues) == 0 {
			return handler(ctx, req) // 无超时配置则透传
		}

		timeoutStamp, err := strconv.ParseInt(timeoutValues[0], 10, 64)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "解析时间戳失败")
		}
		deadline := time.UnixMilli(timeoutStamp)
		if !time.Now().Before(deadline) {
			return nil, status.Error(codes.DeadlineExceeded, "请求已经超时")
		}

		newCtx, cancel := context.WithDeadline(ctx, deadline)
		defer cancel()
		return handler(newCtx, req)
	}
}
