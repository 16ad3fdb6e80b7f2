package errs

import "errors"

var (
	ErrInvalidBatchSize = errors.New("批量生成的数量不合法")
	ErrInvalidID        = errors.New("ID 不合法")
	ErrCircuitBreaker   = errors.New("触发熔断")
)
