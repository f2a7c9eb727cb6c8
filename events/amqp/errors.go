package amqp

import "errors"

var (
	// ErrEmptyURL 连接地址为空.
	ErrEmptyURL = errors.New("amqp: url is empty")
	// ErrNilPublisher 发布者为空.
	ErrNilPublisher = errors.New("amqp: publisher is nil")
	// ErrDial 连接失败.
	ErrDial = errors.New("amqp: dial")
	// ErrChannel 创建 channel 失败.
	ErrChannel = errors.New("amqp: open channel")
	// ErrDeclare 声明交换机失败.
	ErrDeclare = errors.New("amqp: declare exchange")
)
