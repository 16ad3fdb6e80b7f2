package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// 发号服务的 gRPC 描述，消息全部使用 protobuf 的 well-known types，调用方不需要额外的 proto 文件
const (
	IDGeneratorServiceName = "idgen.v1.IDGeneratorService"

	IDGeneratorNextIDMethod       = "/" + IDGeneratorServiceName + "/NextID"
	IDGeneratorNextIDStringMethod = "/" + IDGeneratorServiceName + "/NextIDString"
	IDGeneratorBatchNextIDMethod  = "/" + IDGeneratorServiceName + "/BatchNextID"
	IDGeneratorDecodeMethod       = "/" + IDGeneratorServiceName + "/Decode"
)

// IDGeneratorServiceServer 服务端接口
type IDGeneratorServiceServer interface {
	// NextID 返回 int64 形式的 ID
	NextID(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	// NextIDString 返回十进制字符串形式的 ID
	NextIDString(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	// BatchNextID 请求是数量，返回字符串 ID 列表
	BatchNextID(context.Context, *wrapperspb.UInt32Value) (*structpb.ListValue, error)
	// Decode 返回 id、timestamp、datacenter_id、worker_id、sequence
	Decode(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
}

func RegisterIDGeneratorServiceServer(s grpc.ServiceRegistrar, srv IDGeneratorServiceServer) {
	s.RegisterService(&IDGeneratorServiceDesc, srv)
}

var IDGeneratorServiceDesc = grpc.ServiceDesc{
	ServiceName: IDGeneratorServiceName,
	HandlerType: (*IDGeneratorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NextID", Handler: nextIDHandler},
		{MethodName: "NextIDString", Handler: nextIDStringHandler},
		{MethodName: "BatchNextID", Handler: batchNextIDHandler},
		{MethodName: "Decode", Handler: decodeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "idgen/v1/id_generator.proto", // api/proto 下
}

func nextIDHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDGeneratorServiceServer).NextID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IDGeneratorNextIDMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDGeneratorServiceServer).NextID(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func nextIDStringHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDGeneratorServiceServer).NextIDString(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IDGeneratorNextIDStringMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDGeneratorServiceServer).NextIDString(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func batchNextIDHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDGeneratorServiceServer).BatchNextID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IDGeneratorBatchNextIDMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDGeneratorServiceServer).BatchNextID(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func decodeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDGeneratorServiceServer).Decode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IDGeneratorDecodeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDGeneratorServiceServer).Decode(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// IDGeneratorServiceClient 客户端
type IDGeneratorServiceClient interface {
	NextID(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	NextIDString(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	BatchNextID(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.ListValue, error)
	Decode(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type idGeneratorServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIDGeneratorServiceClient(cc grpc.ClientConnInterface) IDGeneratorServiceClient {
	return &idGeneratorServiceClient{cc: cc}
}

func (c *idGeneratorServiceClient) NextID(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, IDGeneratorNextIDMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idGeneratorServiceClient) NextIDString(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, IDGeneratorNextIDStringMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idGeneratorServiceClient) BatchNextID(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, IDGeneratorBatchNextIDMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idGeneratorServiceClient) Decode(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IDGeneratorDecodeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
