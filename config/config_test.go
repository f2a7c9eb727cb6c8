package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite 配置测试套件.
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
}

type observerConfig struct {
	Delay           time.Duration `mapstructure:"delay"`
	CancelOnDestroy bool          `mapstructure:"cancel_on_destroy"`
}

type kitConfig struct {
	Name   string         `mapstructure:"name"`
	Scroll observerConfig `mapstructure:"scroll"`
}

type validatedConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

func (c *validatedConfig) Validate() error {
	if c.Delay <= 0 {
		return errors.New("delay 必须大于 0")
	}
	return nil
}

func (s *ConfigTestSuite) writeFile(name, content string) string {
	path := filepath.Join(s.tempDir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *ConfigTestSuite) TestLoad_YAML() {
	path := s.writeFile("kit.yaml", `
name: demo
scroll:
  delay: 150ms
  cancel_on_destroy: true
`)
	cfg, err := Load[kitConfig](path)
	s.Require().NoError(err)
	s.Equal("demo", cfg.Name)
	s.Equal(150*time.Millisecond, cfg.Scroll.Delay)
	s.True(cfg.Scroll.CancelOnDestroy)
}

func (s *ConfigTestSuite) TestLoad_JSON() {
	path := s.writeFile("kit.json", `{"name":"json-demo","scroll":{"delay":"1s"}}`)
	cfg, err := Load[kitConfig](path)
	s.Require().NoError(err)
	s.Equal("json-demo", cfg.Name)
	s.Equal(time.Second, cfg.Scroll.Delay)
}

func (s *ConfigTestSuite) TestLoad_FileNotFound() {
	_, err := Load[kitConfig](filepath.Join(s.tempDir, "missing.yaml"))
	s.ErrorIs(err, ErrFileNotFound)
}

func (s *ConfigTestSuite) TestLoad_UnknownExtension() {
	path := s.writeFile("kit.conf", "name: x")
	_, err := Load[kitConfig](path)
	s.ErrorIs(err, ErrInvalidType)

	cfg, err := Load[kitConfig](path, WithConfigType("yaml"))
	s.Require().NoError(err)
	s.Equal("x", cfg.Name)
}

func (s *ConfigTestSuite) TestLoad_InvalidContent() {
	path := s.writeFile("broken.yaml", "name: [unclosed")
	_, err := Load[kitConfig](path)
	s.ErrorIs(err, ErrReadConfig)
}

func (s *ConfigTestSuite) TestLoad_Validation() {
	path := s.writeFile("invalid.yaml", "delay: 0s")
	_, err := Load[validatedConfig](path)
	s.ErrorIs(err, ErrValidation)
}

func (s *ConfigTestSuite) TestLoad_Defaults() {
	path := s.writeFile("partial.yaml", "name: partial")
	cfg, err := Load[kitConfig](path, WithDefaults(map[string]any{
		"scroll.delay": "250ms",
	}))
	s.Require().NoError(err)
	s.Equal(250*time.Millisecond, cfg.Scroll.Delay)
}

func (s *ConfigTestSuite) TestLoad_EnvOverride() {
	path := s.writeFile("env.yaml", "name: from-file\nscroll:\n  delay: 100ms\n")
	s.T().Setenv("EVENTKIT_SCROLL_DELAY", "2s")

	cfg, err := Load[kitConfig](path, WithEnvPrefix("EVENTKIT"))
	s.Require().NoError(err)
	s.Equal(2*time.Second, cfg.Scroll.Delay)

	cfg, err = Load[kitConfig](path, WithEnvPrefix("EVENTKIT"), WithoutEnv())
	s.Require().NoError(err)
	s.Equal(100*time.Millisecond, cfg.Scroll.Delay)
}

func (s *ConfigTestSuite) TestLoadFromBytes() {
	cfg, err := LoadFromBytes[validatedConfig]([]byte("delay: 75ms"), "yaml")
	s.Require().NoError(err)
	s.Equal(75*time.Millisecond, cfg.Delay)

	_, err = LoadFromBytes[validatedConfig]([]byte("delay: -1s"), "yaml")
	s.ErrorIs(err, ErrValidation)
}

func (s *ConfigTestSuite) TestLoadSection() {
	path := s.writeFile("sections.yaml", "scroll:\n  delay: 300ms\nevents:\n  topic: t\n")
	cfg, err := LoadSection[observerConfig](path, "scroll")
	s.Require().NoError(err)
	s.Equal(300*time.Millisecond, cfg.Delay)

	cfg, err = LoadSection[observerConfig](path, "absent", WithDefaults(map[string]any{"delay": "1s"}))
	s.Require().NoError(err)
	s.Equal(time.Second, cfg.Delay)
}

func (s *ConfigTestSuite) TestGetConfigType() {
	s.Equal("yaml", GetConfigType("a.yml"))
	s.Equal("yaml", GetConfigType("a.YAML"))
	s.Equal("json", GetConfigType("a.json"))
	s.Equal("toml", GetConfigType("a.toml"))
	s.Equal("", GetConfigType("a.conf"))
}
