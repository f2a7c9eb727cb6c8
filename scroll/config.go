package scroll

import (
	"fmt"
	"time"

	"github.com/Tsukikage7/eventkit/config"
	"github.com/Tsukikage7/eventkit/timing"
)

// DefaultDelay 默认的阶段判定延迟.
const DefaultDelay = timing.DefaultDelay

// Config 滚动观察器配置.
type Config struct {
	// Delay 冷却与结束判定时长，默认 250ms
	Delay time.Duration `mapstructure:"delay" json:"delay" yaml:"delay"`

	// CancelOnDestroy 销毁时取消尚未触发的 end 阶段
	CancelOnDestroy bool `mapstructure:"cancel_on_destroy" json:"cancel_on_destroy" yaml:"cancel_on_destroy"`
}

// DefaultConfig 返回默认配置.
func DefaultConfig() *Config {
	return &Config{Delay: DefaultDelay}
}

// Validate 验证配置.
func (c *Config) Validate() error {
	if c.Delay <= 0 {
		return fmt.Errorf("%w: got %s", timing.ErrInvalidDelay, c.Delay)
	}
	return nil
}

// LoadConfig 从配置文件的 scroll 段加载配置.
//
// 配置示例:
//
//	scroll:
//	  delay: 150ms
//	  cancel_on_destroy: true
func LoadConfig(path string, opts ...config.Option) (*Config, error) {
	opts = append([]config.Option{
		config.WithDefaults(map[string]any{"delay": DefaultDelay.String()}),
	}, opts...)
	return config.LoadSection[Config](path, "scroll", opts...)
}
