package idgen

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go-idgen/internal/pkg/id_generator"
	"go-idgen/internal/pkg/logger"
)

var _ cron.Job = (*ClockMonitor)(nil)

// ClockMonitor 定时比较系统时钟和最近一次发号的时间戳。
// 系统时钟落后说明发生了回拨，生成器可能正在沿用旧时间戳或者拒绝发号
type ClockMonitor struct {
	gen       Generator
	clock     id_generator.Clock
	tolerance time.Duration
	l         logger.Logger

	lagGauge        prometheus.Gauge
	rollbackCounter prometheus.Counter
}

func NewClockMonitor(gen Generator, clock id_generator.Clock, tolerance time.Duration,
	reg prometheus.Registerer, l logger.Logger) *ClockMonitor {
	if clock == nil {
		clock = id_generator.SystemClock{}
	}
	lagGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "idgen_clock_lag_milliseconds",
		Help: "系统时钟领先最近一次发号时间戳的毫秒数，负数表示时钟回拨",
	})
	rollbackCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "idgen_clock_rollback_detected_total",
		Help: "巡检发现的时钟回拨次数",
	})
	reg.MustRegister(lagGauge, rollbackCounter)
	return &ClockMonitor{
		gen:             gen,
		clock:           clock,
		tolerance:       tolerance,
		l:               l,
		lagGauge:        lagGauge,
		rollbackCounter: rollbackCounter,
	}
}

func (m *ClockMonitor) Run() {
	last := m.gen.LastTimestamp()
	if last < 0 {
		// 还没有发过号
		return
	}
	lag := m.clock.NowMillis() - last
	m.lagGauge.Set(float64(lag))
	if lag >= 0 {
		return
	}

	m.rollbackCounter.Inc()
	drift := time.Duration(-lag) * time.Millisecond
	if drift >= m.tolerance {
		m.l.Error("时钟回拨超过容忍范围，发号会失败",
			logger.Duration("drift", drift),
			logger.Duration("tolerance", m.tolerance),
			logger.Int64("last_timestamp", last))
		return
	}
	m.l.Warn("检测到时钟回拨，沿用上次的时间戳发号",
		logger.Duration("drift", drift),
		logger.Int64("last_timestamp", last))
}
