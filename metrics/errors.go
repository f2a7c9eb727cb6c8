package metrics

import "errors"

// ErrNilConfig 配置为空.
var ErrNilConfig = errors.New("metrics: config is nil")
