package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// envelope 事件的 JSON 表示.
type envelope struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Detail           any            `json:"detail"`
	Cancelable       bool           `json:"cancelable"`
	Bubbles          bool           `json:"bubbles"`
	Composed         bool           `json:"composed"`
	DefaultPrevented bool           `json:"defaultPrevented"`
	Meta             map[string]any `json:"meta,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
}

// Marshal 将事件编码为 JSON，供远程目标发送.
func Marshal(e *Event) ([]byte, error) {
	if e == nil {
		return nil, ErrNilEvent
	}
	data, err := json.Marshal(envelope{
		ID:               e.ID,
		Name:             e.Name,
		Detail:           e.Detail,
		Cancelable:       e.Cancelable,
		Bubbles:          e.Bubbles,
		Composed:         e.Composed,
		DefaultPrevented: e.DefaultPrevented(),
		Meta:             e.Meta,
		Timestamp:        e.Timestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshal, err)
	}
	return data, nil
}

// Unmarshal 解码 Marshal 产生的 JSON.
//
// Detail 与 Meta 解码为 JSON 的通用类型.
func Unmarshal(data []byte) (*Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnmarshal, err)
	}
	e := &Event{
		ID:         env.ID,
		Name:       env.Name,
		Detail:     env.Detail,
		Cancelable: env.Cancelable,
		Bubbles:    env.Bubbles,
		Composed:   env.Composed,
		Meta:       env.Meta,
		Timestamp:  env.Timestamp,
	}
	if env.DefaultPrevented {
		e.prevented.Store(true)
	}
	return e, nil
}
