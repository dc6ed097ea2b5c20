package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"WARN":    zapcore.WarnLevel,
		"fatal":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		l := NewLogger(in)
		assert.True(t, l.Core().Enabled(want), in)
		if want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(want-1), in)
		}
	}
}
