package kafka

import "errors"

var (
	// ErrNilConfig 配置为空.
	ErrNilConfig = errors.New("kafka: config is nil")
	// ErrEmptyTopic 主题为空.
	ErrEmptyTopic = errors.New("kafka: topic is empty")
	// ErrNoBrokers 未配置 broker.
	ErrNoBrokers = errors.New("kafka: no brokers")
	// ErrNilProducer 生产者为空.
	ErrNilProducer = errors.New("kafka: producer is nil")
	// ErrCreateProducer 创建生产者失败.
	ErrCreateProducer = errors.New("kafka: create producer")
)
