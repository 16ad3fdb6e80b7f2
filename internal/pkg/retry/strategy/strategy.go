package strategy

import (
	"time"
)

// Strategy 重试策略，有状态，每次重试流程用一个新的实例
type Strategy interface {
	// Next 返回下一次重试前要等待的时间，第二个返回值为 false 表示不再重试
	Next() (time.Duration, bool)
}

var (
	_ Strategy = (*FixedInterval)(nil)
	_ Strategy = (*ExponentialBackoff)(nil)
)

// FixedInterval 固定间隔重试，maxRetries 小于等于 0 表示无限重试
type FixedInterval struct {
	maxRetries int32
	interval   time.Duration
	retries    int32
}

func NewFixedInterval(maxRetries int32, interval time.Duration) *FixedInterval {
	return &FixedInterval{maxRetries: maxRetries, interval: interval}
}

func (f *FixedInterval) Next() (time.Duration, bool) {
	f.retries++
	if f.maxRetries > 0 && f.retries > f.maxRetries {
		return 0, false
	}
	return f.interval, true
}

// ExponentialBackoff 指数退避，间隔从 initialInterval 开始翻倍，不超过 maxInterval
type ExponentialBackoff struct {
	initialInterval time.Duration
	maxInterval     time.Duration
	maxRetries      int32
	retries         int32
	current         time.Duration
}

func NewExponentialBackoff(initialInterval, maxInterval time.Duration, maxRetries int32) *ExponentialBackoff {
	return &ExponentialBackoff{
		initialInterval: initialInterval,
		maxInterval:     maxInterval,
		maxRetries:      maxRetries,
	}
}

func (e *ExponentialBackoff) Next() (time.Duration, bool) {
	e.retries++
	if e.maxRetries > 0 && e.retries > e.maxRetries {
		return 0, false
	}
	switch {
	case e.current == 0:
		e.current = e.initialInterval
	case e.current < e.maxInterval:
		e.current *= 2
	}
	if e.current > e.maxInterval {
		e.current = e.maxInterval
	}
	return e.current, true
}
