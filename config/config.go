// Package config 提供配置加载功能.
//
// 基于 viper 实现，支持 yaml/json/toml 文件、字节数组与环境变量覆盖.
// eventkit 中 timing.Config、scroll.Config、events/kafka.Config 等组件配置
// 均通过本包加载.
package config

import (
	"path/filepath"
	"strings"
)

// Validatable 可验证的配置接口.
type Validatable interface {
	Validate() error
}

// GetConfigType 根据文件扩展名获取配置类型.
func GetConfigType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	case ".env":
		return "env"
	default:
		return ""
	}
}
