package idgen

import (
	"context"
	"fmt"

	"go-idgen/internal/domain"
	"go-idgen/internal/errs"
	"go-idgen/internal/pkg/id_generator"
)

const DefaultMaxBatchSize = 1000

// Generator 发号的底层实现，雪花算法和 sonyflake 都实现了它
type Generator interface {
	NextID() (int64, error)
	Decompose(id int64) id_generator.Parts
	// LastTimestamp 最近一次发号的毫秒时间戳，没有发过号返回 -1
	LastTimestamp() int64
}

var _ Generator = (*id_generator.Generator)(nil)

//go:generate mockgen -source=./service.go -destination=./mocks/service.mock.go -package=idgenmocks
type Service interface {
	// NextID 生成一个 ID
	NextID(ctx context.Context) (domain.ID, error)
	// BatchNextID 一次生成 count 个递增的 ID
	BatchNextID(ctx context.Context, count int) ([]domain.ID, error)
	// Decode 解析 ID，不依赖生成器的状态
	Decode(ctx context.Context, id domain.ID) (domain.IDParts, error)
}

type service struct {
	gen          Generator
	maxBatchSize int
}

func NewService(gen Generator, maxBatchSize int) Service {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &service{
		gen:          gen,
		maxBatchSize: maxBatchSize,
	}
}

func (s *service) NextID(_ context.Context) (domain.ID, error) {
	id, err := s.gen.NextID()
	if err != nil {
		return 0, err
	}
	return domain.ID(id), nil
}

func (s *service) BatchNextID(ctx context.Context, count int) ([]domain.ID, error) {
	if count <= 0 || count > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d, 必须在 [1, %d] 之间", errs.ErrInvalidBatchSize, count, s.maxBatchSize)
	}
	ids := make([]domain.ID, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, err := s.gen.NextID()
		if err != nil {
			return nil, err
		}
		ids = append(ids, domain.ID(id))
	}
	return ids, nil
}

func (s *service) Decode(_ context.Context, id domain.ID) (domain.IDParts, error) {
	if id < 0 {
		return domain.IDParts{}, fmt.Errorf("%w: %d", errs.ErrInvalidID, id)
	}
	parts := s.gen.Decompose(id.Int64())
	return domain.IDParts{
		ID:           id,
		Timestamp:    parts.Timestamp,
		DatacenterID: parts.DatacenterID,
		WorkerID:     parts.WorkerID,
		Sequence:     parts.Sequence,
	}, nil
}
