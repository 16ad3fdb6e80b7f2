package id_generator

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfiguration 构造生成器时配置不合法，只会在创建阶段出现
	ErrInvalidConfiguration = errors.New("id_generator: 配置不合法")
	// ErrClockRolledBack 时钟回拨超过容忍范围，本次调用不会生成 ID
	ErrClockRolledBack = errors.New("id_generator: 时钟回拨")
	// ErrTimestampOverflow 时间戳差值超出了时间戳位数能表示的范围
	ErrTimestampOverflow = errors.New("id_generator: 时间戳溢出")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// ClockRolledBackError 记录回拨的幅度
type ClockRolledBackError struct {
	Drift time.Duration
}

func (e *ClockRolledBackError) Error() string {
	return fmt.Sprintf("%s: 拒绝生成 ID，回拨了 %dms", ErrClockRolledBack, e.Drift.Milliseconds())
}

func (e *ClockRolledBackError) Is(target error) bool {
	return target == ErrClockRolledBack
}
