package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNopLoggerIsSafe(t *testing.T) {
	logger := Nop()
	require.NotPanics(t, func() {
		logger.Debug("debug %d", 1)
		logger.Info("info")
		logger.Warn("warn")
		logger.Error("error")
	})
}

func TestIsNil(t *testing.T) {
	require.True(t, IsNil(nil))
	var rec *Recorder
	require.True(t, IsNil(rec))
	require.False(t, IsNil(Nop()))
	require.False(t, IsNil(NewRecorder()))
}

func TestOrNop(t *testing.T) {
	rec := NewRecorder()
	require.Same(t, Logger(rec), OrNop(rec))
	require.NotPanics(t, func() { OrNop(nil).Info("safe") })
}

func TestMultiFansOut(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()

	logger := Multi(a, nil, b)
	logger.Info("count=%d", 3)
	logger.Error("boom")

	for _, rec := range []*Recorder{a, b} {
		entries := rec.Entries()
		require.Len(t, entries, 2)
		require.Equal(t, Entry{Level: INFO, Message: "count=3"}, entries[0])
		require.Equal(t, Entry{Level: ERROR, Message: "boom"}, entries[1])
	}
}

func TestRecorderFilter(t *testing.T) {
	rec := NewRecorder()
	rec.Debug("d")
	rec.Warn("w1")
	rec.Warn("w2")

	warns := rec.Filter(WARN)
	require.Len(t, warns, 2)
	require.Empty(t, rec.Filter(ERROR))
}
