package redis

import "time"

// Config Redis 目标配置.
type Config struct {
	// Addr 服务器地址，例如 localhost:6379
	Addr string `mapstructure:"addr" json:"addr" yaml:"addr"`

	// Password 密码
	Password string `mapstructure:"password" json:"password" yaml:"password"`

	// DB 数据库编号
	DB int `mapstructure:"db" json:"db" yaml:"db"`

	// ChannelPrefix 频道前缀，频道名为 前缀 + 事件名
	ChannelPrefix string `mapstructure:"channel_prefix" json:"channel_prefix" yaml:"channel_prefix"`

	// Timeout 连接超时，默认 5s
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
}

// ApplyDefaults 应用默认值.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
}

// Validate 验证配置.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return ErrEmptyAddr
	}
	return nil
}
