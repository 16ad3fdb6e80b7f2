package id_generator

import "time"

// Clock 提供毫秒级的当前时间
// 生成器不假设时钟单调，回拨由状态机自己处理
type Clock interface {
	NowMillis() int64
}

// SystemClock 系统墙上时钟
type SystemClock struct{}

func (SystemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}

// ClockFunc 把普通函数适配成 Clock
type ClockFunc func() int64

func (f ClockFunc) NowMillis() int64 {
	return f()
}
