package id

import "go-idgen/internal/pkg/ginx"

const (
	invalidArgumentCode = 400001
	clockRolledBackCode = 503001
	systemErrorCode     = 506001
)

var (
	invalidBatchSizeResult = ginx.Result{
		Code: invalidArgumentCode,
		Msg:  "数量不合法",
	}
	invalidIDResult = ginx.Result{
		Code: invalidArgumentCode,
		Msg:  "ID 不合法",
	}
	clockRolledBackResult = ginx.Result{
		Code: clockRolledBackCode,
		Msg:  "时钟回拨，暂时无法发号",
	}
	systemErrorResult = ginx.Result{
		Code: systemErrorCode,
		Msg:  "系统错误",
	}
)
