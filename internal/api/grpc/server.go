package grpc

import (
	"context"
	"errors"

	"go-idgen/internal/domain"
	"go-idgen/internal/errs"
	"go-idgen/internal/pkg/id_generator"
	"go-idgen/internal/service/idgen"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ IDGeneratorServiceServer = (*IDGeneratorServer)(nil)

// IDGeneratorServer 发号服务 gRPC 服务器
type IDGeneratorServer struct {
	svc idgen.Service
}

func NewIDGeneratorServer(svc idgen.Service) *IDGeneratorServer {
	return &IDGeneratorServer{svc: svc}
}

func (s *IDGeneratorServer) Register(server *grpc.Server) {
	RegisterIDGeneratorServiceServer(server, s)
}

func (s *IDGeneratorServer) NextID(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	id, err := s.svc.NextID(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Int64(id.Int64()), nil
}

func (s *IDGeneratorServer) NextIDString(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	id, err := s.svc.NextID(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(id.String()), nil
}

func (s *IDGeneratorServer) BatchNextID(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.ListValue, error) {
	ids, err := s.svc.BatchNextID(ctx, int(req.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}
	values := make([]*structpb.Value, 0, len(ids))
	for _, id := range ids {
		values = append(values, structpb.NewStringValue(id.String()))
	}
	return &structpb.ListValue{Values: values}, nil
}

func (s *IDGeneratorServer) Decode(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	parts, err := s.svc.Decode(ctx, domain.ID(req.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"id":            structpb.NewStringValue(parts.ID.String()),
			"timestamp":     structpb.NewNumberValue(float64(parts.Timestamp.UnixMilli())),
			"datacenter_id": structpb.NewNumberValue(float64(parts.DatacenterID)),
			"worker_id":     structpb.NewNumberValue(float64(parts.WorkerID)),
			"sequence":      structpb.NewNumberValue(float64(parts.Sequence)),
		},
	}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, id_generator.ErrClockRolledBack):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, errs.ErrInvalidBatchSize), errors.Is(err, errs.ErrInvalidID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
