package ginx

import (
	"errors"
)

var ErrUnauthorized = errors.New("unauthorized")

var ErrNoResponse = errors.New("no response")
