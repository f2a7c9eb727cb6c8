package timing

import (
	"fmt"
	"time"

	"github.com/Tsukikage7/eventkit/config"
)

// DefaultDelay 默认的节流/防抖延迟.
const DefaultDelay = 250 * time.Millisecond

// Config 定时控制配置.
type Config struct {
	// Delay 冷却与静默判定时长
	Delay time.Duration `mapstructure:"delay" json:"delay" yaml:"delay"`
}

// DefaultConfig 返回默认配置.
func DefaultConfig() *Config {
	return &Config{Delay: DefaultDelay}
}

// Validate 验证配置.
func (c *Config) Validate() error {
	if c.Delay <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidDelay, c.Delay)
	}
	return nil
}

// LoadConfig 从配置文件加载，未配置的 delay 使用默认值.
//
// 支持 EVENTKIT_ 前缀的环境变量覆盖，例如 EVENTKIT_DELAY=100ms.
func LoadConfig(path string, opts ...config.Option) (*Config, error) {
	opts = append([]config.Option{
		config.WithEnvPrefix("EVENTKIT"),
		config.WithDefaults(map[string]any{"delay": DefaultDelay.String()}),
	}, opts...)
	return config.Load[Config](path, opts...)
}
