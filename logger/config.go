package logger

import (
	"fmt"
	"strings"
)

// Config 日志配置.
//
// 可以嵌入组件配置文件中，由 config 包加载:
//
//	logger:
//	  level: debug
//	  format: console
type Config struct {
	// Name 写入每条日志的 service 字段
	Name   string `json:"name" yaml:"name" mapstructure:"name"`
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	Output   string `json:"output" yaml:"output" mapstructure:"output"`
	FilePath string `json:"file_path" yaml:"file_path" mapstructure:"file_path"`

	Caller     bool `json:"caller" yaml:"caller" mapstructure:"caller"`
	Stacktrace bool `json:"stacktrace" yaml:"stacktrace" mapstructure:"stacktrace"`

	Encoder EncoderConfig `json:"encoder" yaml:"encoder" mapstructure:"encoder"`
}

// EncoderConfig 编码器字段配置.
type EncoderConfig struct {
	// TimeFormat 预置格式名或 time 包布局字符串
	TimeFormat string `json:"time_format" yaml:"time_format" mapstructure:"time_format"`
	TimeKey    string `json:"time_key" yaml:"time_key" mapstructure:"time_key"`
	MessageKey string `json:"message_key" yaml:"message_key" mapstructure:"message_key"`
}

// ConfigError 配置错误.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("logger config error [%s]: %s", e.Field, e.Message)
}

var allowed = map[string][]string{
	"level":  {LevelDebug, LevelInfo, LevelWarn, "warning", LevelError},
	"format": {FormatJSON, FormatConsole},
	"output": {OutputStdout, OutputStderr, OutputFile},
}

func oneOf(field, value string) error {
	if value == "" {
		return nil
	}
	for _, v := range allowed[field] {
		if strings.EqualFold(v, value) {
			return nil
		}
	}
	return &ConfigError{Field: field, Message: fmt.Sprintf("unsupported value %q", value)}
}

// Validate 验证配置，空字段视为使用默认值.
func (c *Config) Validate() error {
	if c == nil {
		return &ConfigError{Field: "config", Message: "config cannot be nil"}
	}
	checks := []struct{ field, value string }{
		{"level", c.Level},
		{"format", c.Format},
		{"output", c.Output},
	}
	for _, chk := range checks {
		if err := oneOf(chk.field, chk.value); err != nil {
			return err
		}
	}
	if strings.EqualFold(c.Output, OutputFile) && c.FilePath == "" {
		return &ConfigError{Field: "file_path", Message: "file_path is required when output is file"}
	}
	return nil
}

// ApplyDefaults 填充未设置的字段.
func (c *Config) ApplyDefaults() {
	setDefault(&c.Name, "eventkit")
	setDefault(&c.Level, LevelInfo)
	setDefault(&c.Format, FormatJSON)
	setDefault(&c.Output, OutputStdout)
	setDefault(&c.Encoder.TimeKey, "timestamp")
	setDefault(&c.Encoder.MessageKey, "msg")
	setDefault(&c.Encoder.TimeFormat, TimeFormatDateTime)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// DefaultConfig 返回默认配置.
func DefaultConfig() *Config {
	config := &Config{}
	config.ApplyDefaults()
	return config
}

// NewDevConfig 返回开发环境配置，console 格式输出 debug 日志.
func NewDevConfig() *Config {
	config := &Config{
		Level:  LevelDebug,
		Format: FormatConsole,
		Caller: true,
	}
	config.ApplyDefaults()
	return config
}
