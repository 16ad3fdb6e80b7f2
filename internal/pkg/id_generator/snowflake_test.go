package id_generator

import (
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const testNow int64 = 1700000000000

func newTestGenerator(t *testing.T, clock Clock, opts ...func(st *Settings)) *Generator {
	t.Helper()
	st := DefaultSettings()
	st.Clock = clock
	st.WorkerID = 1
	for _, opt := range opts {
		opt(&st)
	}
	g, err := NewGenerator(st)
	require.NoError(t, err)
	return g
}

func TestNewGenerator(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		settings func() Settings
		wantErr  error
		wantID   int64
	}{
		{
			name:     "默认配置",
			settings: DefaultSettings,
		},
		{
			name: "机器 ID 取最大值",
			settings: func() Settings {
				st := DefaultSettings()
				st.WorkerID = 1<<DefaultWorkerIDBits - 1
				return st
			},
			wantID: 255,
		},
		{
			name: "机器 ID 超过最大值",
			settings: func() Settings {
				st := DefaultSettings()
				st.WorkerID = 1 << DefaultWorkerIDBits
				return st
			},
			wantErr: ErrInvalidConfiguration,
		},
		{
			name: "机器 ID 为负数",
			settings: func() Settings {
				st := DefaultSettings()
				st.WorkerID = -1
				return st
			},
			wantErr: ErrInvalidConfiguration,
		},
		{
			name: "数据中心 ID 超过最大值",
			settings: func() Settings {
				st := DefaultSettings()
				st.DatacenterID = 4
				return st
			},
			wantErr: ErrInvalidConfiguration,
		},
		{
			name: "数据中心 ID 为负数",
			settings: func() Settings {
				st := DefaultSettings()
				st.DatacenterID = -1
				return st
			},
			wantErr: ErrInvalidConfiguration,
		},
		{
			name: "epoch 为负数",
			settings: func() Settings {
				st := DefaultSettings()
				st.Epoch = -1
				return st
			},
			wantErr: ErrInvalidConfiguration,
		},
		{
			name: "epoch 在未来",
			settings: func() Settings {
				st := DefaultSettings()
				st.Epoch = time.Now().Add(time.Hour).UnixMilli()
				return st
			},
			wantErr: ErrInvalidConfiguration,
		},
		{
			name: "位数总和超过 64",
			settings: func() Settings {
				st := DefaultSettings()
				st.WorkerIDBits = 20
				return st
			},
			wantErr: ErrInvalidConfiguration,
		},
		{
			name: "回拨容忍时间为负数",
			settings: func() Settings {
				st := DefaultSettings()
				st.RollbackTolerance = -time.Second
				return st
			},
			wantErr: ErrInvalidConfiguration,
		},
		{
			name: "从函数获取机器 ID",
			settings: func() Settings {
				st := DefaultSettings()
				st.WorkerID = 3
				st.WorkerIDFunc = func() (int64, error) {
					return 42, nil
				}
				return st
			},
			wantID: 42,
		},
		{
			name: "获取机器 ID 失败",
			settings: func() Settings {
				st := DefaultSettings()
				st.WorkerIDFunc = func() (int64, error) {
					return 0, errors.New("没有网卡")
				}
				return st
			},
			wantErr: ErrInvalidConfiguration,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g, err := NewGenerator(tc.settings())
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, g.WorkerID())
			assert.Equal(t, int64(-1), g.LastTimestamp())
		})
	}
}

func TestNewGenerator_ReportsAllViolations(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		settings Settings
		wantCnt  int
	}{
		{
			name: "epoch 为负数和机器 ID 越界",
			settings: Settings{
				Epoch:            -1,
				TimestampBits:    DefaultTimestampBits,
				DatacenterIDBits: DefaultDatacenterIDBits,
				WorkerIDBits:     DefaultWorkerIDBits,
				SequenceBits:     DefaultSequenceBits,
				WorkerID:         300,
			},
			wantCnt: 2,
		},
		{
			name: "位数总和超限和数据中心 ID 为负数",
			settings: Settings{
				Epoch:            DefaultEpoch,
				TimestampBits:    50,
				DatacenterIDBits: DefaultDatacenterIDBits,
				WorkerIDBits:     DefaultWorkerIDBits,
				SequenceBits:     DefaultSequenceBits,
				DatacenterID:     -1,
			},
			wantCnt: 2,
		},
		{
			name: "获取机器 ID 失败和回拨容忍时间为负数",
			settings: Settings{
				Epoch:            -1,
				TimestampBits:    DefaultTimestampBits,
				DatacenterIDBits: DefaultDatacenterIDBits,
				WorkerIDBits:     DefaultWorkerIDBits,
				SequenceBits:     DefaultSequenceBits,
				WorkerIDFunc: func() (int64, error) {
					return 0, errors.New("没有网卡")
				},
				RollbackTolerance: -time.Second,
			},
			wantCnt: 3,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tc.settings.Clock = newFakeClock(testNow)
			g, err := NewGenerator(tc.settings)
			require.Error(t, err)
			assert.Nil(t, g)
			errs := multierr.Errors(err)
			assert.Len(t, errs, tc.wantCnt)
			for _, e := range errs {
				assert.ErrorIs(t, e, ErrInvalidConfiguration)
			}
		})
	}
}

func TestGenerator_Monotonic(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t, nil)
	var last int64 = -1
	for i := 0; i < 100000; i++ {
		id, err := g.NextID()
		require.NoError(t, err)
		require.Greater(t, id, last)
		last = id
	}
}

func TestGenerator_SameMillisecond(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g := newTestGenerator(t, clock)

	cnt := int(g.Layout().MaxSequence()) + 1
	ids := make([]int64, 0, cnt)
	for i := 0; i < cnt; i++ {
		id, err := g.NextID()
		require.NoError(t, err)
		ids = append(ids, id)
	}

	for i, id := range ids {
		assert.Equal(t, int64(i), g.Layout().Sequence(id))
		assert.Equal(t, time.UnixMilli(testNow), g.Layout().Timestamp(id))
		if i > 0 {
			assert.Greater(t, id, ids[i-1])
		}
	}
}

func TestGenerator_SequenceExhausted(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g := newTestGenerator(t, clock, func(st *Settings) {
		st.SequenceBits = 2
	})

	// 第五次调用读到的还是同一毫秒，自旋时再读到下一毫秒
	clock.Push(testNow, testNow, testNow, testNow, testNow, testNow, testNow+1)
	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := g.NextID()
		require.NoError(t, err)
		ids = append(ids, id)
	}

	l := g.Layout()
	seqs := make([]int64, 0, len(ids))
	for _, id := range ids {
		seqs = append(seqs, l.Sequence(id))
	}
	assert.Equal(t, []int64{0, 1, 2, 3, 0}, seqs)
	for i := 0; i < 4; i++ {
		assert.Equal(t, testNow, l.TimestampMillis(ids[i]))
	}
	assert.Equal(t, testNow+1, l.TimestampMillis(ids[4]))
	assert.Equal(t, testNow+1, g.LastTimestamp())
	assert.True(t, sort.SliceIsSorted(ids, func(i, j int) bool { return ids[i] < ids[j] }))
}

func TestGenerator_ToleratedRollback(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g := newTestGenerator(t, clock)

	first, err := g.NextID()
	require.NoError(t, err)

	clock.Set(testNow - 500)
	second, err := g.NextID()
	require.NoError(t, err)

	l := g.Layout()
	assert.Greater(t, second, first)
	assert.Equal(t, l.TimestampMillis(first), l.TimestampMillis(second))
	assert.Equal(t, int64(1), l.Sequence(second))
	assert.Equal(t, testNow, g.LastTimestamp())
}

func TestGenerator_RejectedRollback(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g := newTestGenerator(t, clock)

	first, err := g.NextID()
	require.NoError(t, err)

	clock.Set(testNow - 5000)
	_, err = g.NextID()
	require.ErrorIs(t, err, ErrClockRolledBack)
	var rbErr *ClockRolledBackError
	require.ErrorAs(t, err, &rbErr)
	assert.Equal(t, 5*time.Second, rbErr.Drift)
	// 状态不变
	assert.Equal(t, testNow, g.LastTimestamp())

	// 时钟恢复之后继续递增
	clock.Set(testNow + 1)
	next, err := g.NextID()
	require.NoError(t, err)
	assert.Greater(t, next, first)
	assert.Equal(t, int64(0), g.Layout().Sequence(next))
}

func TestGenerator_RollbackAtToleranceBoundary(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g := newTestGenerator(t, clock)

	_, err := g.NextID()
	require.NoError(t, err)

	clock.Set(testNow - DefaultRollbackTolerance.Milliseconds() + 1)
	_, err = g.NextID()
	require.NoError(t, err)

	clock.Set(testNow - DefaultRollbackTolerance.Milliseconds())
	_, err = g.NextID()
	assert.ErrorIs(t, err, ErrClockRolledBack)
}

func TestGenerator_ZeroTolerance(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g := newTestGenerator(t, clock, func(st *Settings) {
		st.RollbackTolerance = 0
	})

	_, err := g.NextID()
	require.NoError(t, err)
	// 同一毫秒不算回拨
	_, err = g.NextID()
	require.NoError(t, err)

	clock.Set(testNow - 1)
	_, err = g.NextID()
	assert.ErrorIs(t, err, ErrClockRolledBack)
}

func TestGenerator_RollbackWhileSpinning(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g := newTestGenerator(t, clock, func(st *Settings) {
		st.SequenceBits = 0
	})

	_, err := g.NextID()
	require.NoError(t, err)

	// 序列号位数为 0，同一毫秒第二次调用就要自旋，自旋中时钟大幅回拨
	clock.Push(testNow, testNow-10000)
	_, err = g.NextID()
	require.ErrorIs(t, err, ErrClockRolledBack)
	assert.Equal(t, testNow, g.LastTimestamp())

	// 小幅回拨会继续等待
	clock.Push(testNow, testNow-100, testNow, testNow+1)
	id, err := g.NextID()
	require.NoError(t, err)
	assert.Equal(t, testNow+1, g.Layout().TimestampMillis(id))
}

func TestGenerator_ClockBeforeEpoch(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g := newTestGenerator(t, clock, func(st *Settings) {
		st.Epoch = testNow
	})

	clock.Set(testNow - 1)
	_, err := g.NextID()
	assert.ErrorIs(t, err, ErrClockRolledBack)
	assert.Equal(t, int64(-1), g.LastTimestamp())

	clock.Set(testNow)
	id, err := g.NextID()
	require.NoError(t, err)
	assert.Equal(t, int64(1)<<g.Layout().workerIDShift, id)
}

func TestGenerator_TimestampOverflow(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g := newTestGenerator(t, clock, func(st *Settings) {
		st.Epoch = testNow - 10
		st.TimestampBits = 3
	})

	clock.Set(testNow - 3)
	_, err := g.NextID()
	require.NoError(t, err)

	clock.Set(testNow)
	_, err = g.NextID()
	assert.ErrorIs(t, err, ErrTimestampOverflow)
	assert.Equal(t, testNow-3, g.LastTimestamp())
}

func TestGenerator_DecodeRoundTrip(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t, nil, func(st *Settings) {
		st.WorkerID = 201
		st.DatacenterID = 2
	})

	for i := 0; i < 1000; i++ {
		before := time.Now().UnixMilli()
		id, err := g.NextID()
		require.NoError(t, err)
		after := time.Now().UnixMilli()

		l := g.Layout()
		assert.Equal(t, int64(201), DecodeWorkerID(id, l))
		assert.Equal(t, int64(2), DecodeDataCenterID(id, l))
		ts := DecodeTimestamp(id, l).UnixMilli()
		// 自旋可能把时间戳推到下一毫秒
		assert.GreaterOrEqual(t, ts, before)
		assert.LessOrEqual(t, ts, after+1)
	}
}

func TestGenerator_NextIDStr(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g := newTestGenerator(t, clock)

	s, err := g.NextIDStr()
	require.NoError(t, err)
	want := g.Layout().Pack(testNow-DefaultEpoch, 0, 1, 0)
	assert.Equal(t, want, mustParse(t, s))

	clock.Set(testNow - 10000)
	s, err = g.NextIDStr()
	assert.ErrorIs(t, err, ErrClockRolledBack)
	assert.Empty(t, s)
}

func TestGenerator_Concurrent(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t, nil)

	const (
		goroutines = 16
		perG       = 5000
	)
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		all = make(map[int64]struct{}, goroutines*perG)
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, perG)
			var last int64 = -1
			for j := 0; j < perG; j++ {
				id, err := g.NextID()
				if !assert.NoError(t, err) {
					return
				}
				// 同一个 goroutine 内先返回的一定更小
				assert.Greater(t, id, last)
				last = id
				local = append(local, id)
			}
			mu.Lock()
			for _, id := range local {
				all[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, all, goroutines*perG)
}

func TestGenerator_CrossInstanceDisjoint(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testNow)
	g1 := newTestGenerator(t, clock, func(st *Settings) {
		st.WorkerID = 1
	})
	g2 := newTestGenerator(t, clock, func(st *Settings) {
		st.WorkerID = 2
	})

	const n = 2000
	res := make([][]int64, 2)
	var wg sync.WaitGroup
	for i, g := range []*Generator{g1, g2} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]int64, 0, n)
			for j := 0; j < n; j++ {
				// 时钟不动，两个实例的 ID 都落在同一毫秒
				id, err := g.NextID()
				if !assert.NoError(t, err) {
					return
				}
				ids = append(ids, id)
			}
			res[i] = ids
		}()
	}
	wg.Wait()

	for _, ids := range res {
		for _, id := range ids {
			assert.Equal(t, testNow, g1.Layout().TimestampMillis(id))
		}
	}
	seen := make(map[int64]struct{}, 2*n)
	for _, ids := range res {
		for _, id := range ids {
			_, ok := seen[id]
			require.False(t, ok, "重复的 ID %d", id)
			seen[id] = struct{}{}
		}
	}
	assert.Equal(t, int64(1), g1.Layout().WorkerID(res[0][0]))
	assert.Equal(t, int64(2), g2.Layout().WorkerID(res[1][0]))
}

func mustParse(t *testing.T, s string) int64 {
	t.Helper()
	v, err := strconv.ParseInt(s, 10, 64)
	require.NoError(t, err)
	return v
}
