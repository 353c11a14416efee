package settings

import "errors"

var (
	ErrReadConfig    = errors.New("failed to read config")
	ErrInvalidConfig = errors.New("invalid config")
)
