package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToZapFields_ConcreteTypes(t *testing.T) {
	fields := toZapFields([]Field{
		String("s", "v"),
		Int("i", 7),
		Bool("b", true),
		Duration("d", time.Second),
		Err(errors.New("boom")),
		Any("m", map[string]int{"x": 1}),
	})
	require.Len(t, fields, 6)
	assert.Equal(t, "s", fields[0].Key)
	assert.Equal(t, "error", fields[4].Key)
}

func TestErr_NilError(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestLogger_EmitsFieldsAndLevels(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewFromCore(core)

	log.Info("resolved", String("source", "uspto_api"), Int("total", 3))
	log.Warn("slow request", Duration("elapsed", 4*time.Second))

	entries := observed.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "resolved", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "uspto_api", entries[0].ContextMap()["source"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestLogger_WithAndNamed(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewFromCore(core).Named("resolver").With(String("domain", "patents"))

	log.Debug("cache miss")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "resolver", entries[0].LoggerName)
	assert.Equal(t, "patents", entries[0].ContextMap()["domain"])
}

func TestNew_DefaultsAreValid(t *testing.T) {
	log, err := New(Config{})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("garbage"))
}

func TestNopLogger_DoesNotPanic(t *testing.T) {
	log := NewNopLogger()
	log.Info("ignored", String("k", "v"))
	log.With(Int("n", 1)).Named("x").Error("still ignored")
}
