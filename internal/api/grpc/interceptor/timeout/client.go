package timeout

import (
	"context"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// 毫秒级截止时间戳
const timeoutKey = "x-deadline-ms"

// InjectorInterceptor 把 context 的截止时间写进 metadata
func InjectorInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if deadline, ok := ctx.Deadline(); ok {
			ctx = metadata.AppendToOutgoingContext(ctx, timeoutKey, strconv.FormatInt(deadline.UnixMilli(), 10))
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
