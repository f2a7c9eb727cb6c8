package websocket

import "time"

// Config WebSocket 目标配置.
type Config struct {
	// ReadBufferSize 读缓冲区大小
	ReadBufferSize int `json:"read_buffer_size" yaml:"read_buffer_size" mapstructure:"read_buffer_size"`
	// WriteBufferSize 写缓冲区大小
	WriteBufferSize int `json:"write_buffer_size" yaml:"write_buffer_size" mapstructure:"write_buffer_size"`
	// MaxMessageSize 客户端消息最大长度
	MaxMessageSize int64 `json:"max_message_size" yaml:"max_message_size" mapstructure:"max_message_size"`
	// SendBuffer 每个客户端的待发送事件数，满时丢弃该客户端的事件
	SendBuffer int `json:"send_buffer" yaml:"send_buffer" mapstructure:"send_buffer"`
	// WriteTimeout 写超时
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
	// PingInterval Ping 间隔
	PingInterval time.Duration `json:"ping_interval" yaml:"ping_interval" mapstructure:"ping_interval"`
	// PongTimeout Pong 超时
	PongTimeout time.Duration `json:"pong_timeout" yaml:"pong_timeout" mapstructure:"pong_timeout"`
	// CheckOrigin 跨域检查函数
	CheckOrigin func(origin string) bool `json:"-" yaml:"-" mapstructure:"-"`
}

// DefaultConfig 返回默认配置.
func DefaultConfig() *Config {
	return &Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		MaxMessageSize:  4 * 1024,
		SendBuffer:      256,
		WriteTimeout:    10 * time.Second,
		PingInterval:    30 * time.Second,
		PongTimeout:     60 * time.Second,
	}
}

// ApplyDefaults 为未设置的字段应用默认值.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = d.SendBuffer
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.PongTimeout <= 0 {
		c.PongTimeout = d.PongTimeout
	}
}
