package id_generator

import "sync"

// fakeClock 手动控制的时钟。script 不为空时每次读取依次弹出一个值，弹完之后停在最后一个值上
type fakeClock struct {
	mu     sync.Mutex
	now    int64
	script []int64
}

func newFakeClock(now int64) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.script) > 0 {
		c.now = c.script[0]
		c.script = c.script[1:]
	}
	return c.now
}

func (c *fakeClock) Set(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *fakeClock) Push(values ...int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.script = append(c.script, values...)
}
