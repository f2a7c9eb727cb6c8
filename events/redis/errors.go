package redis

import "errors"

var (
	// ErrNilConfig 配置为空.
	ErrNilConfig = errors.New("redis: config is nil")
	// ErrEmptyAddr 地址为空.
	ErrEmptyAddr = errors.New("redis: addr is empty")
	// ErrNilPublisher 发布者为空.
	ErrNilPublisher = errors.New("redis: publisher is nil")
	// ErrConnect 连接失败.
	ErrConnect = errors.New("redis: connect")
)
