package timing

import "errors"

var (
	// ErrInvalidDelay 延迟必须大于 0.
	ErrInvalidDelay = errors.New("timing: delay must be positive")
	// ErrNilConfig 配置为空.
	ErrNilConfig = errors.New("timing: config is nil")
)
