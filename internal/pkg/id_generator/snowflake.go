package id_generator

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/multierr"
)

const (
	// DefaultEpoch 基准时间 2022-07-27 09:36:20.040 UTC，同一种业务要保持一致
	DefaultEpoch int64 = 1658914580040
	// DefaultRollbackTolerance 容忍 2 秒内的回拨，避免 NTP 校时造成的异常
	DefaultRollbackTolerance = 2000 * time.Millisecond

	// 还没有生成过 ID
	noTimestamp int64 = -1
)

// Settings 生成器配置
type Settings struct {
	// Epoch 毫秒级基准时间
	Epoch            int64
	TimestampBits    int
	DatacenterIDBits int
	WorkerIDBits     int
	SequenceBits     int

	DatacenterID int64
	WorkerID     int64
	// WorkerIDFunc 不为空的时候用它的返回值作为机器 ID，覆盖 WorkerID
	WorkerIDFunc func() (int64, error)

	// RollbackTolerance 小于这个幅度的回拨沿用上一次的时间戳继续发号
	RollbackTolerance time.Duration
	// Clock 为空时使用 SystemClock
	Clock Clock
}

// DefaultSettings 默认配置：41/2/8/12 位，2 秒回拨容忍
func DefaultSettings() Settings {
	return Settings{
		Epoch:             DefaultEpoch,
		TimestampBits:     DefaultTimestampBits,
		DatacenterIDBits:  DefaultDatacenterIDBits,
		WorkerIDBits:      DefaultWorkerIDBits,
		SequenceBits:      DefaultSequenceBits,
		RollbackTolerance: DefaultRollbackTolerance,
	}
}

// Generator 雪花算法 ID 生成器，一个进程内的一个 worker 持有一个实例。
// NextID 可以被任意多的 goroutine 并发调用
type Generator struct {
	layout       Layout
	datacenterID int64
	workerID     int64
	tolerance    int64
	clock        Clock

	mu            sync.Mutex
	lastTimestamp int64
	sequence      int64
}

// NewGenerator 校验配置并创建生成器，所有不合法的配置项会一起返回
func NewGenerator(st Settings) (*Generator, error) {
	clock := st.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	layout, err := NewLayout(st.Epoch, st.TimestampBits, st.DatacenterIDBits, st.WorkerIDBits, st.SequenceBits)

	workerID := st.WorkerID
	workerIDOK := true
	if st.WorkerIDFunc != nil {
		id, er := st.WorkerIDFunc()
		if er != nil {
			err = multierr.Append(err, fmt.Errorf("%w: 获取机器 ID 失败: %w", ErrInvalidConfiguration, er))
			workerIDOK = false
		}
		workerID = id
	}

	// 位数不合法的时候 layout 不可用，只按位数本身做范围检查
	if workerIDOK {
		err = multierr.Append(err, checkID("机器 ID", workerID, st.WorkerIDBits))
	}
	err = multierr.Append(err, checkID("数据中心 ID", st.DatacenterID, st.DatacenterIDBits))
	if st.RollbackTolerance < 0 {
		err = multierr.Append(err, invalidf("回拨容忍时间不能为负数: %s", st.RollbackTolerance))
	}
	if now := clock.NowMillis(); st.Epoch > now {
		err = multierr.Append(err, invalidf("epoch %d 晚于当前时间 %d", st.Epoch, now))
	}
	if err != nil {
		return nil, err
	}

	return &Generator{
		layout:        layout,
		datacenterID:  st.DatacenterID,
		workerID:      workerID,
		tolerance:     st.RollbackTolerance.Milliseconds(),
		clock:         clock,
		lastTimestamp: noTimestamp,
	}, nil
}

func checkID(name string, id int64, bits int) error {
	if id < 0 {
		return invalidf("%s 不能为负数: %d", name, id)
	}
	if bits >= 0 && bits < totalBits-signBits {
		if limit := maxValue(bits); id > limit {
			return invalidf("%s 必须在 [0, %d] 之间: %d", name, limit, id)
		}
	}
	return nil
}

// NextID 生成下一个 ID。
// 时钟回拨超过容忍范围时返回 *ClockRolledBackError，内部状态保持不变，时钟恢复后可以继续调用
func (g *Generator) NextID() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.NowMillis()
	if now < g.lastTimestamp {
		drift := g.lastTimestamp - now
		if drift >= g.tolerance {
			return 0, rolledBack(drift)
		}
		now = g.lastTimestamp
	}

	var seq int64
	if now == g.lastTimestamp {
		seq = (g.sequence + 1) & g.layout.sequenceMask
		if seq == 0 {
			// 当前毫秒的序列号用完了
			var err error
			now, err = g.tilNextMillis(g.lastTimestamp)
			if err != nil {
				return 0, err
			}
		}
	}

	delta := now - g.layout.epoch
	if delta < 0 {
		return 0, rolledBack(-delta)
	}
	if delta > g.layout.timestampMask {
		return 0, fmt.Errorf("%w: 距离 epoch %dms，最多 %dms", ErrTimestampOverflow, delta, g.layout.timestampMask)
	}

	g.lastTimestamp = now
	g.sequence = seq
	return g.layout.Pack(delta, g.datacenterID, g.workerID, seq), nil
}

// NextIDStr 十进制字符串形式的 ID，给没法精确处理 64 位整数的下游（比如 JSON）使用
func (g *Generator) NextIDStr() (string, error) {
	id, err := g.NextID()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// tilNextMillis 自旋直到时钟越过 last。
// 持锁忙等最多大约一毫秒，用 CPU 换取尽快感知到时间前进
func (g *Generator) tilNextMillis(last int64) (int64, error) {
	now := g.clock.NowMillis()
	for now <= last {
		if drift := last - now; drift > 0 && drift >= g.tolerance {
			return 0, rolledBack(drift)
		}
		now = g.clock.NowMillis()
	}
	return now, nil
}

func rolledBack(drift int64) error {
	return &ClockRolledBackError{Drift: time.Duration(drift) * time.Millisecond}
}

// Layout 生成器使用的位布局，可以用来解析它发出的 ID
func (g *Generator) Layout() Layout {
	return g.layout
}

func (g *Generator) WorkerID() int64 {
	return g.workerID
}

func (g *Generator) DatacenterID() int64 {
	return g.datacenterID
}

// LastTimestamp 最近一次发号的毫秒时间戳，还没发过号时返回 -1
func (g *Generator) LastTimestamp() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastTimestamp
}

// Decompose 解析本生成器发出的 ID
func (g *Generator) Decompose(id int64) Parts {
	return g.layout.Decompose(id)
}
