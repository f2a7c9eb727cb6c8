package events

import "errors"

var (
	// ErrNilEvent 事件为空.
	ErrNilEvent = errors.New("events: event is nil")
	// ErrMarshal 事件编码失败.
	ErrMarshal = errors.New("events: marshal event")
	// ErrUnmarshal 事件解码失败.
	ErrUnmarshal = errors.New("events: unmarshal event")
)
