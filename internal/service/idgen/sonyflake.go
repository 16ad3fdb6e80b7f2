package idgen

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/sony/sonyflake"
	"go-idgen/internal/pkg/id_generator"
)

// sonyflake 的时间单位
const sonyflakeTimeUnit = 10 * time.Millisecond

var errSonyflakeSettings = errors.New("sonyflake 配置不合法")

// SonyflakeGenerator 把 sonyflake 适配成 Generator。
// sonyflake 是 39 位 10ms 时间戳 + 8 位序列号 + 16 位机器号，没有数据中心字段
type SonyflakeGenerator struct {
	sf        *sonyflake.Sonyflake
	startTime int64 // 以 10ms 为单位
	last      atomic.Int64
}

func NewSonyflakeGenerator(startTime time.Time, machineID uint16) (*SonyflakeGenerator, error) {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: startTime,
		MachineID: func() (uint16, error) {
			return machineID, nil
		},
	})
	if sf == nil {
		return nil, errors.Join(id_generator.ErrInvalidConfiguration, errSonyflakeSettings)
	}
	g := &SonyflakeGenerator{
		sf:        sf,
		startTime: startTime.UTC().UnixNano() / int64(sonyflakeTimeUnit),
	}
	g.last.Store(-1)
	return g, nil
}

func (g *SonyflakeGenerator) NextID() (int64, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return 0, err
	}
	g.storeLast(g.timestamp(int64(id)).UnixMilli())
	return int64(id), nil
}

// storeLast 并发调用的时候只保留更大的时间戳，避免巡检误报回拨
func (g *SonyflakeGenerator) storeLast(ts int64) {
	for {
		cur := g.last.Load()
		if ts <= cur || g.last.CompareAndSwap(cur, ts) {
			return
		}
	}
}

func (g *SonyflakeGenerator) Decompose(id int64) id_generator.Parts {
	m := sonyflake.Decompose(uint64(id))
	return id_generator.Parts{
		ID:        id,
		Timestamp: g.timestamp(id),
		WorkerID:  int64(m["machine-id"]),
		Sequence:  int64(m["sequence"]),
	}
}

func (g *SonyflakeGenerator) LastTimestamp() int64 {
	return g.last.Load()
}

func (g *SonyflakeGenerator) timestamp(id int64) time.Time {
	elapsed := int64(sonyflake.Decompose(uint64(id))["time"])
	return time.Unix(0, (g.startTime+elapsed)*int64(sonyflakeTimeUnit))
}
