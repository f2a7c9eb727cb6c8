// Package kafka 提供把事件写入 Kafka 主题的派发目标.
//
// 消息 key 为事件名，value 为 events.Marshal 的 JSON，
// 消息头携带事件 ID 与追踪上下文.
//
// 示例:
//
//	target, err := kafka.New([]string{"localhost:9092"}, "ui-events")
//	if err != nil {
//	    return err
//	}
//	defer target.Close()
//
//	manager.Dispatch(ctx, "saved", data, []events.Target{target})
package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tsukikage7/eventkit/events"
	"github.com/Tsukikage7/eventkit/metrics"
)

// 消息头名称.
const (
	HeaderEventID   = "event-id"
	HeaderEventName = "event-name"
)

// Target Kafka 派发目标.
//
// 发送失败只记录日志和指标，不影响其他目标.
type Target struct {
	producer sarama.SyncProducer
	topic    string
	opts     *options

	mu     sync.RWMutex
	closed bool
}

// New 创建 Kafka 派发目标.
//
// 生产者使用同步发送，RequiredAcks 为 WaitForAll，开启幂等与 Snappy 压缩.
func New(brokers []string, topic string, opts ...Option) (*Target, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	config := sarama.NewConfig()
	config.Version = sarama.V3_8_0_0
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, errors.Join(ErrCreateProducer, err)
	}

	t, err := NewWithProducer(producer, topic, opts...)
	if err != nil {
		producer.Close()
		return nil, err
	}
	t.logDebugf("producer started: brokers=%v topic=%s", brokers, topic)
	return t, nil
}

// NewFromConfig 根据配置创建 Kafka 派发目标.
func NewFromConfig(cfg *Config, opts ...Option) (*Target, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(cfg.Brokers, cfg.Topic, opts...)
}

// NewWithProducer 使用已有的生产者创建派发目标.
func NewWithProducer(producer sarama.SyncProducer, topic string, opts ...Option) (*Target, error) {
	if producer == nil {
		return nil, ErrNilProducer
	}
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = metrics.Nop()
	}
	if o.propagator == nil {
		o.propagator = otel.GetTextMapPropagator()
	}

	return &Target{producer: producer, topic: topic, opts: o}, nil
}

// DispatchEvent 把事件写入主题.
func (t *Target) DispatchEvent(ctx context.Context, e *events.Event) bool {
	t.mu.RLock()
	closed := t.closed
	t.mu.RUnlock()
	if closed {
		t.fail(e, errors.New("target closed"))
		return !e.DefaultPrevented()
	}

	var span trace.Span
	if t.opts.tracer != nil {
		ctx, span = t.opts.tracer.Start(ctx, "kafka.produce",
			trace.WithSpanKind(trace.SpanKindProducer),
			trace.WithAttributes(
				attribute.String("messaging.system", "kafka"),
				attribute.String("messaging.destination.name", t.topic),
				attribute.String("messaging.operation", "publish"),
				attribute.String("event.name", e.Name),
			),
		)
		defer span.End()
	}

	value, err := events.Marshal(e)
	if err != nil {
		t.fail(e, err)
		setSpanError(span, err)
		return !e.DefaultPrevented()
	}

	headers := propagation.MapCarrier{
		HeaderEventID:   e.ID,
		HeaderEventName: e.Name,
	}
	t.opts.propagator.Inject(ctx, headers)

	msg := &sarama.ProducerMessage{
		Topic:     t.topic,
		Key:       sarama.StringEncoder(e.Name),
		Value:     sarama.ByteEncoder(value),
		Timestamp: time.Now(),
	}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	partition, offset, err := t.producer.SendMessage(msg)
	if err != nil {
		t.fail(e, err)
		setSpanError(span, err)
		return !e.DefaultPrevented()
	}

	t.logDebugf("event %s sent: topic=%s partition=%d offset=%d", e.Name, t.topic, partition, offset)
	return !e.DefaultPrevented()
}

// Close 关闭生产者，重复调用是安全的.
func (t *Target) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	return t.producer.Close()
}

func (t *Target) fail(e *events.Event, err error) {
	t.opts.metrics.Counter("events_target_errors_total", map[string]string{"target": "kafka"})
	if log := t.opts.logger; log != nil {
		log.Errorf("[EventTarget] kafka 发送事件失败: name=%s id=%s err=%v", e.Name, e.ID, err)
	}
}

func (t *Target) logDebugf(format string, args ...any) {
	if log := t.opts.logger; log != nil {
		log.Debugf("[EventTarget] kafka "+format, args...)
	}
}

func setSpanError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
