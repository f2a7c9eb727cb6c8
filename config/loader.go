package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Load 从文件加载配置.
//
// 根据文件扩展名识别格式. 如果配置类型实现了 Validatable 接口，会自动进行验证.
func Load[T any](configPath string, opts ...Option) (*T, error) {
	options := buildOptions(opts)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
	}

	configType := options.ConfigType
	if configType == "" {
		configType = GetConfigType(configPath)
	}
	if configType == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType(configType)
	applyOptions(v, options)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	return unmarshalAndValidate[T](v)
}

// MustLoad 加载配置，失败时 panic.
func MustLoad[T any](configPath string, opts ...Option) *T {
	config, err := Load[T](configPath, opts...)
	if err != nil {
		panic(err)
	}
	return config
}

// LoadFromBytes 从字节数组加载配置.
func LoadFromBytes[T any](data []byte, configType string, opts ...Option) (*T, error) {
	options := buildOptions(opts)

	v := viper.New()
	v.SetConfigType(configType)
	applyOptions(v, options)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	return unmarshalAndValidate[T](v)
}

// LoadSection 从文件加载配置中的某一段，例如 "scroll".
func LoadSection[T any](configPath, key string, opts ...Option) (*T, error) {
	options := buildOptions(opts)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if options.ConfigType != "" {
		v.SetConfigType(options.ConfigType)
	}
	applyOptions(v, options)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	sub := v.Sub(key)
	if sub == nil {
		sub = viper.New()
	}
	applyOptions(sub, options)
	return unmarshalAndValidate[T](sub)
}

func buildOptions(opts []Option) *Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// applyOptions 应用通用选项到 viper 实例.
func applyOptions(v *viper.Viper, options *Options) {
	for key, value := range options.Defaults {
		v.SetDefault(key, value)
	}

	if options.EnvPrefix != "" {
		v.SetEnvPrefix(options.EnvPrefix)
	}
	if options.EnvKeyReplacer != nil {
		v.SetEnvKeyReplacer(options.EnvKeyReplacer)
	}
	if options.AutomaticEnv {
		v.AutomaticEnv()
	}
}

// unmarshalAndValidate 解析配置并验证.
func unmarshalAndValidate[T any](v *viper.Viper) (*T, error) {
	config := new(T)
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnmarshal, err)
	}

	if validator, ok := any(config).(Validatable); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	return config, nil
}
