package id

// ID 一律用字符串传输，JSON 的数字没法精确表示 64 位整数
type NextIDResp struct {
	ID string `json:"id"`
}

type BatchNextIDReq struct {
	Count int `json:"count"`
}

type BatchNextIDResp struct {
	IDs []string `json:"ids"`
}

type DecodeReq struct {
	ID string `json:"id"`
}

type DecodeResp struct {
	ID           string `json:"id"`
	Timestamp    int64  `json:"timestamp"` // 毫秒
	Time         string `json:"time"`      // RFC3339，UTC
	DatacenterID int64  `json:"datacenterId"`
	WorkerID     int64  `json:"workerId"`
	Sequence     int64  `json:"sequence"`
}
