package retry

import (
	"context"
	"fmt"
	"time"

	"go-idgen/internal/pkg/retry/strategy"
	"go.uber.org/multierr"
)

// Config 重试配置
type Config struct {
	// fixed 或者 exponential
	Type string `yaml:"type"`
	// 固定间隔
	FixedInterval *FixedIntervalConfig `yaml:"fixedInterval"`
	// 指数退避
	ExponentialBackoff *ExponentialBackoffConfig `yaml:"exponentialBackoff"`
}

type FixedIntervalConfig struct {
	MaxRetries int32         `yaml:"maxRetries"`
	Interval   time.Duration `yaml:"interval"`
}

type ExponentialBackoffConfig struct {
	InitialInterval time.Duration `yaml:"initialInterval"`
	MaxInterval     time.Duration `yaml:"maxInterval"`
	MaxRetries      int32         `yaml:"maxRetries"`
}

// NewStrategy 每次调用都返回一个新的策略
func (c Config) NewStrategy() (strategy.Strategy, error) {
	switch c.Type {
	case "fixed":
		if c.FixedInterval == nil {
			return nil, fmt.Errorf("retry: 缺少 fixedInterval 配置")
		}
		return strategy.NewFixedInterval(c.FixedInterval.MaxRetries, c.FixedInterval.Interval), nil
	case "exponential":
		if c.ExponentialBackoff == nil {
			return nil, fmt.Errorf("retry: 缺少 exponentialBackoff 配置")
		}
		eb := c.ExponentialBackoff
		return strategy.NewExponentialBackoff(eb.InitialInterval, eb.MaxInterval, eb.MaxRetries), nil
	default:
		return nil, fmt.Errorf("retry: 未知的重试策略 %q", c.Type)
	}
}

// Do 执行 fn，失败了按策略等待后重试。
// 策略放弃的时候返回所有失败的错误，ctx 结束的时候返回 ctx 的错误
func Do(ctx context.Context, s strategy.Strategy, fn func() error) error {
	var errs error
	for {
		err := fn()
		if err == nil {
			return nil
		}
		errs = multierr.Append(errs, err)
		interval, ok := s.Next()
		if !ok {
			return errs
		}
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
