package ioc

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go-idgen/internal/pkg/id_generator"
	"go-idgen/internal/pkg/logger"
	"go-idgen/internal/pkg/netx"
	"go-idgen/internal/service/idgen"
	"go-idgen/internal/service/idgen/metrics"
	"go-idgen/internal/service/idgen/tracing"
)

type IDGeneratorConfig struct {
	// snowflake 或者 sonyflake
	Backend           string        `yaml:"backend"`
	Epoch             int64         `yaml:"epoch"`
	TimestampBits     int           `yaml:"timestampBits"`
	DatacenterIDBits  int           `yaml:"datacenterIdBits"`
	WorkerIDBits      int           `yaml:"workerIdBits"`
	SequenceBits      int           `yaml:"sequenceBits"`
	DatacenterID      int64         `yaml:"datacenterId"`
	WorkerID          int64         `yaml:"workerId"`
	RollbackTolerance time.Duration `yaml:"rollbackTolerance"`
	MaxBatchSize      int           `yaml:"maxBatchSize"`
}

func InitIDGeneratorConfig() IDGeneratorConfig {
	st := id_generator.DefaultSettings()
	cfg := IDGeneratorConfig{
		Backend:           "snowflake",
		Epoch:             st.Epoch,
		TimestampBits:     st.TimestampBits,
		DatacenterIDBits:  st.DatacenterIDBits,
		WorkerIDBits:      st.WorkerIDBits,
		SequenceBits:      st.SequenceBits,
		RollbackTolerance: st.RollbackTolerance,
		MaxBatchSize:      idgen.DefaultMaxBatchSize,
	}
	if err := viper.UnmarshalKey("idgen", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

func InitIDGenerator(cfg IDGeneratorConfig, l logger.Logger) idgen.Generator {
	switch cfg.Backend {
	case "", "snowflake":
		st := id_generator.Settings{
			Epoch:             cfg.Epoch,
			TimestampBits:     cfg.TimestampBits,
			DatacenterIDBits:  cfg.DatacenterIDBits,
			WorkerIDBits:      cfg.WorkerIDBits,
			SequenceBits:      cfg.SequenceBits,
			DatacenterID:      cfg.DatacenterID,
			WorkerID:          cfg.WorkerID,
			RollbackTolerance: cfg.RollbackTolerance,
		}
		// 没配置 workerId 的时候用本机 IP 的最后一段
		if !viper.IsSet("idgen.workerId") {
			st.WorkerIDFunc = netx.WorkerIDFromLocalIPv4
		}
		gen, err := id_generator.NewGenerator(st)
		if err != nil {
			panic(err)
		}
		l.Info("雪花算法发号器初始化完成",
			logger.Int64("datacenterId", gen.DatacenterID()),
			logger.Int64("workerId", gen.WorkerID()))
		return gen
	case "sonyflake":
		machineID := cfg.WorkerID
		if !viper.IsSet("idgen.workerId") {
			id, err := netx.WorkerIDFromLocalIPv4()
			if err != nil {
				panic(err)
			}
			machineID = id
		}
		if machineID < 0 || machineID > 0xFFFF {
			panic(fmt.Errorf("%w: sonyflake 机器号 %d 超出范围", id_generator.ErrInvalidConfiguration, machineID))
		}
		gen, err := idgen.NewSonyflakeGenerator(time.UnixMilli(cfg.Epoch), uint16(machineID))
		if err != nil {
			panic(err)
		}
		l.Info("sonyflake 发号器初始化完成", logger.Int64("machineId", machineID))
		return gen
	default:
		panic(fmt.Errorf("%w: 未知的发号器 %s", id_generator.ErrInvalidConfiguration, cfg.Backend))
	}
}

// InitIDService 装配发号服务，外面依次套上指标和链路追踪
func InitIDService(gen idgen.Generator, cfg IDGeneratorConfig) idgen.Service {
	svc := idgen.NewService(gen, cfg.MaxBatchSize)
	return tracing.NewService(metrics.NewService(svc, prometheus.DefaultRegisterer))
}
