package domain

import (
	"strconv"
	"time"
)

// ID 生成器发出的 64 位 ID，最高位恒为 0
type ID int64

func (id ID) Int64() int64 {
	return int64(id)
}

// String 十进制形式，JSON 里统一用它传输，避免 JS 之类的下游丢精度
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// IDParts ID 拆解之后的各个字段
type IDParts struct {
	ID           ID
	Timestamp    time.Time
	DatacenterID int64
	WorkerID     int64
	Sequence     int64
}
