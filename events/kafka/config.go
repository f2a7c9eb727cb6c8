package kafka

// Config Kafka 目标配置.
type Config struct {
	// Brokers Kafka 服务器地址列表
	Brokers []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`

	// Topic 事件写入的主题
	Topic string `mapstructure:"topic" json:"topic" yaml:"topic"`
}

// Validate 验证配置.
func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return ErrNoBrokers
	}
	if c.Topic == "" {
		return ErrEmptyTopic
	}
	return nil
}
