package id_generator

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

const (
	// 位数分配默认值，数据中心与机器位数相对 Twitter 原版的 5/5 做了调整
	DefaultTimestampBits    = 41 // 时间戳位数
	DefaultDatacenterIDBits = 2  // 数据中心位数
	DefaultWorkerIDBits     = 8  // 机器位数
	DefaultSequenceBits     = 12 // 序列号位数

	// 符号位
	signBits = 1
	// int64 总位数
	totalBits = 64
)

// Layout 描述一个 ID 的位布局：[符号位 | 时间戳差值 | 数据中心 | 机器 | 序列号]
// 位移和掩码在创建时计算好，之后不可变，可以在任意 goroutine 中并发使用
type Layout struct {
	epoch int64

	timestampBits    int
	datacenterIDBits int
	workerIDBits     int
	sequenceBits     int

	workerIDShift     int
	datacenterIDShift int
	timestampShift    int

	sequenceMask     int64
	workerIDMask     int64
	datacenterIDMask int64
	timestampMask    int64
}

// NewLayout 校验位宽并预先计算位移与掩码
// epoch 为毫秒级 Unix 时间戳
func NewLayout(epoch int64, timestampBits, datacenterIDBits, workerIDBits, sequenceBits int) (Layout, error) {
	var err error
	if epoch < 0 {
		err = multierr.Append(err, invalidf("epoch 不能小于 0: %d", epoch))
	}
	if timestampBits <= 0 {
		err = multierr.Append(err, invalidf("时间戳位数必须大于 0: %d", timestampBits))
	}
	if datacenterIDBits < 0 || workerIDBits < 0 || sequenceBits < 0 {
		err = multierr.Append(err, invalidf("位数不能为负数: datacenter=%d worker=%d sequence=%d",
			datacenterIDBits, workerIDBits, sequenceBits))
	}
	if sum := signBits + timestampBits + datacenterIDBits + workerIDBits + sequenceBits; sum > totalBits {
		err = multierr.Append(err, invalidf("位数总和 %d 超过 %d", sum, totalBits))
	}
	if err != nil {
		return Layout{}, err
	}

	return Layout{
		epoch:             epoch,
		timestampBits:     timestampBits,
		datacenterIDBits:  datacenterIDBits,
		workerIDBits:      workerIDBits,
		sequenceBits:      sequenceBits,
		workerIDShift:     sequenceBits,
		datacenterIDShift: sequenceBits + workerIDBits,
		timestampShift:    sequenceBits + workerIDBits + datacenterIDBits,
		sequenceMask:      maxValue(sequenceBits),
		workerIDMask:      maxValue(workerIDBits),
		datacenterIDMask:  maxValue(datacenterIDBits),
		timestampMask:     maxValue(timestampBits),
	}, nil
}

// DefaultLayout 使用默认位数与默认 epoch
func DefaultLayout() Layout {
	l, _ := NewLayout(DefaultEpoch, DefaultTimestampBits, DefaultDatacenterIDBits,
		DefaultWorkerIDBits, DefaultSequenceBits)
	return l
}

func maxValue(bits int) int64 {
	return -1 ^ (-1 << bits)
}

func (l Layout) Epoch() int64 { return l.epoch }

func (l Layout) TimestampBits() int { return l.timestampBits }

func (l Layout) DatacenterIDBits() int { return l.datacenterIDBits }

func (l Layout) WorkerIDBits() int { return l.workerIDBits }

func (l Layout) SequenceBits() int { return l.sequenceBits }

// MaxWorkerID 机器 ID 允许的最大值
func (l Layout) MaxWorkerID() int64 { return l.workerIDMask }

// MaxDatacenterID 数据中心 ID 允许的最大值
func (l Layout) MaxDatacenterID() int64 { return l.datacenterIDMask }

// MaxSequence 单毫秒内序列号的最大值
func (l Layout) MaxSequence() int64 { return l.sequenceMask }

// MaxTimestampDelta 相对 epoch 可以表示的最大毫秒数
func (l Layout) MaxTimestampDelta() int64 { return l.timestampMask }

// Pack 把各个字段移到各自的位置上再合并。
// 这里只负责放置，不做截断，调用方要保证每个字段都在位宽范围内
func (l Layout) Pack(timestampDelta, datacenterID, workerID, sequence int64) int64 {
	return timestampDelta<<l.timestampShift |
		datacenterID<<l.datacenterIDShift |
		workerID<<l.workerIDShift |
		sequence
}

// WorkerID 从 ID 中解析出机器 ID
func (l Layout) WorkerID(id int64) int64 {
	return id >> l.workerIDShift & l.workerIDMask
}

// DatacenterID 从 ID 中解析出数据中心 ID
func (l Layout) DatacenterID(id int64) int64 {
	return id >> l.datacenterIDShift & l.datacenterIDMask
}

// Sequence 从 ID 中解析出序列号
func (l Layout) Sequence(id int64) int64 {
	return id & l.sequenceMask
}

// TimestampMillis 从 ID 中解析出生成时的毫秒时间戳（已经加回 epoch）
func (l Layout) TimestampMillis(id int64) int64 {
	return l.epoch + (id >> l.timestampShift & l.timestampMask)
}

// Timestamp 从 ID 中解析出生成时间
func (l Layout) Timestamp(id int64) time.Time {
	return time.UnixMilli(l.TimestampMillis(id))
}

// Parts ID 拆解后的各个字段
type Parts struct {
	ID           int64
	Timestamp    time.Time
	DatacenterID int64
	WorkerID     int64
	Sequence     int64
}

// Decompose 一次性拆出所有字段
func (l Layout) Decompose(id int64) Parts {
	return Parts{
		ID:           id,
		Timestamp:    l.Timestamp(id),
		DatacenterID: l.DatacenterID(id),
		WorkerID:     l.WorkerID(id),
		Sequence:     l.Sequence(id),
	}
}

func (l Layout) String() string {
	return fmt.Sprintf("timestamp=%d datacenter=%d worker=%d sequence=%d epoch=%d",
		l.timestampBits, l.datacenterIDBits, l.workerIDBits, l.sequenceBits, l.epoch)
}

// DecodeWorkerID 根据布局解析机器 ID
func DecodeWorkerID(id int64, l Layout) int64 {
	return l.WorkerID(id)
}

// DecodeDataCenterID 根据布局解析数据中心 ID
func DecodeDataCenterID(id int64, l Layout) int64 {
	return l.DatacenterID(id)
}

// DecodeSequence 根据布局解析序列号
func DecodeSequence(id int64, l Layout) int64 {
	return l.Sequence(id)
}

// DecodeTimestamp 根据布局解析生成时间
func DecodeTimestamp(id int64, l Layout) time.Time {
	return l.Timestamp(id)
}
