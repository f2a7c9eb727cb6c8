package logger

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

// LoggerTestSuite logger 测试套件.
type LoggerTestSuite struct {
	suite.Suite
	tmpDir string
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (s *LoggerTestSuite) SetupTest() {
	s.tmpDir = s.T().TempDir()
}

func (s *LoggerTestSuite) TestNewLogger_NilConfig() {
	log, err := NewLogger(nil)
	s.Error(err)
	s.Nil(log)
}

func (s *LoggerTestSuite) TestNewLogger_DefaultConfig() {
	log, err := NewLogger(DefaultConfig())
	s.NoError(err)
	s.NotNil(log)
	defer log.Close()
}

func (s *LoggerTestSuite) TestNewLogger_DevConfig() {
	log, err := NewLogger(NewDevConfig())
	s.NoError(err)
	s.NotNil(log)
	defer log.Close()
}

func (s *LoggerTestSuite) TestNewLogger_InvalidFields() {
	cases := []*Config{
		{Level: "invalid"},
		{Format: "invalid"},
		{Output: "invalid"},
		{Output: OutputFile},
	}
	for _, cfg := range cases {
		log, err := NewLogger(cfg)
		s.Error(err)
		s.Nil(log)

		var cfgErr *ConfigError
		s.True(errors.As(err, &cfgErr))
	}
}

func (s *LoggerTestSuite) TestNewLogger_CustomTimeLayout() {
	var buf bytes.Buffer
	log, err := NewWithWriter(&Config{Encoder: EncoderConfig{TimeFormat: "2006", TimeKey: "ts"}}, &buf)
	s.Require().NoError(err)

	log.Info("layout")
	s.Regexp(`"ts":"\d{4}"`, buf.String())
}

func (s *LoggerTestSuite) TestNewLogger_FileOutput() {
	path := filepath.Join(s.tmpDir, "logs", "eventkit.log")
	log, err := NewLogger(&Config{Output: OutputFile, FilePath: path})
	s.Require().NoError(err)

	log.Info("file message")
	s.Require().NoError(log.Close())

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Contains(string(data), "file message")
}

func (s *LoggerTestSuite) TestNewWithWriter_JSON() {
	var buf bytes.Buffer
	log, err := NewWithWriter(&Config{Level: LevelDebug}, &buf)
	s.Require().NoError(err)

	log.With(String("component", "flatten"), Int("count", 3)).Debugf("phase %s", "start")
	s.Require().NoError(log.Sync())

	out := buf.String()
	s.Contains(out, `"msg":"phase start"`)
	s.Contains(out, `"component":"flatten"`)
	s.Contains(out, `"count":3`)
	s.Contains(out, `"service":"eventkit"`)
}

func (s *LoggerTestSuite) TestNewWithWriter_LevelFilter() {
	var buf bytes.Buffer
	log, err := NewWithWriter(&Config{Level: LevelWarn}, &buf)
	s.Require().NoError(err)

	log.Info("hidden")
	log.Warn("shown")

	s.NotContains(buf.String(), "hidden")
	s.Contains(buf.String(), "shown")
}

func (s *LoggerTestSuite) TestWithContext() {
	var buf bytes.Buffer
	log, err := NewWithWriter(DefaultConfig(), &buf)
	s.Require().NoError(err)

	s.Same(log, log.WithContext(context.Background()))

	ctx := ContextWithTraceID(context.Background(), "trace-123")
	ctx = ContextWithSpanID(ctx, "span-456")
	log.WithContext(ctx).Info("traced")

	s.Contains(buf.String(), `"traceId":"trace-123"`)
	s.Contains(buf.String(), `"spanId":"span-456"`)
}

func (s *LoggerTestSuite) TestNop() {
	log := NewNop()
	s.NotPanics(func() {
		log.With(Err(errors.New("x"))).WithContext(context.Background()).Errorf("%d", 1)
	})
	s.NoError(log.Sync())
	s.NoError(log.Close())
}

func (s *LoggerTestSuite) TestApplyDefaults() {
	cfg := &Config{}
	cfg.ApplyDefaults()
	s.Equal("eventkit", cfg.Name)
	s.Equal(LevelInfo, cfg.Level)
	s.Equal(FormatJSON, cfg.Format)
	s.Equal(OutputStdout, cfg.Output)
	s.Equal("timestamp", cfg.Encoder.TimeKey)
	s.Equal("msg", cfg.Encoder.MessageKey)
	s.Equal(TimeFormatDateTime, cfg.Encoder.TimeFormat)
}
