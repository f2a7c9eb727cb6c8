// Package redis 提供把事件发布到 Redis pub/sub 频道的派发目标.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Tsukikage7/eventkit/events"
	"github.com/Tsukikage7/eventkit/logger"
	"github.com/Tsukikage7/eventkit/metrics"
)

// Publisher 发布消息的最小接口，*goredis.Client 满足该接口.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *goredis.IntCmd
}

// Option 目标配置选项.
type Option func(*Target)

// WithLogger 设置日志记录器.
func WithLogger(log logger.Logger) Option {
	return func(t *Target) {
		t.logger = log
	}
}

// WithMetrics 设置指标记录器.
func WithMetrics(r metrics.Recorder) Option {
	return func(t *Target) {
		t.metrics = r
	}
}

// Target Redis 派发目标.
type Target struct {
	publisher Publisher
	prefix    string
	client    *goredis.Client
	logger    logger.Logger
	metrics   metrics.Recorder
}

// New 连接 Redis 并创建派发目标.
func New(cfg *Config, opts ...Option) (*Target, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	t, err := NewWithPublisher(client, cfg.ChannelPrefix, opts...)
	if err != nil {
		client.Close()
		return nil, err
	}
	t.client = client
	if t.logger != nil {
		t.logger.Debugf("[EventTarget] redis connected: addr=%s db=%d", cfg.Addr, cfg.DB)
	}
	return t, nil
}

// NewWithPublisher 使用已有的 Publisher 创建派发目标.
func NewWithPublisher(publisher Publisher, prefix string, opts ...Option) (*Target, error) {
	if publisher == nil {
		return nil, ErrNilPublisher
	}
	t := &Target{publisher: publisher, prefix: prefix}
	for _, opt := range opts {
		opt(t)
	}
	if t.metrics == nil {
		t.metrics = metrics.Nop()
	}
	return t, nil
}

// Channel 返回事件名对应的频道.
func (t *Target) Channel(name string) string {
	return t.prefix + name
}

// DispatchEvent 发布事件.
func (t *Target) DispatchEvent(ctx context.Context, e *events.Event) bool {
	payload, err := events.Marshal(e)
	if err != nil {
		t.fail(e, err)
		return !e.DefaultPrevented()
	}

	receivers, err := t.publisher.Publish(ctx, t.Channel(e.Name), payload).Result()
	if err != nil {
		t.fail(e, err)
		return !e.DefaultPrevented()
	}

	if t.logger != nil {
		t.logger.Debugf("[EventTarget] redis event %s published: channel=%s receivers=%d", e.Name, t.Channel(e.Name), receivers)
	}
	return !e.DefaultPrevented()
}

// Close 关闭 New 创建的客户端.
func (t *Target) Close() error {
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}

func (t *Target) fail(e *events.Event, err error) {
	t.metrics.Counter("events_target_errors_total", map[string]string{"target": "redis"})
	if t.logger != nil {
		t.logger.Errorf("[EventTarget] redis 发布事件失败: name=%s id=%s err=%v", e.Name, e.ID, err)
	}
}
