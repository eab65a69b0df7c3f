package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDevelopmentMode(t *testing.T) {
	l, err := New("dev")
	require.NoError(t, err)
	require.NotNil(t, l.SugaredLogger)
}

func TestNewProductionMode(t *testing.T) {
	l, err := New("production")
	require.NoError(t, err)
	require.NotNil(t, l.SugaredLogger)
}

func TestWithReturnsChildLoggerWithFields(t *testing.T) {
	l, err := New("dev")
	require.NoError(t, err)

	child := l.With("component", "test")
	require.NotNil(t, child)
	require.NotSame(t, l, child)
}

func TestLogMethodsDoNotPanic(t *testing.T) {
	l, err := New("dev")
	require.NoError(t, err)
	defer l.Sync()

	require.NotPanics(t, func() {
		l.Debug("debug message", "k", "v")
		l.Info("info message", "k", "v")
		l.Warn("warn message", "k", "v")
		l.Error("error message", "k", "v")
	})
}
