package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEnvReturnsValueWhenSet(t *testing.T) {
	t.Setenv("SUTBUILD_TEST_VAR", "hello")
	require.Equal(t, "hello", GetEnv("SUTBUILD_TEST_VAR", "fallback", nil))
}

func TestGetEnvReturnsDefaultWhenUnset(t *testing.T) {
	require.NoError(t, os.Unsetenv("SUTBUILD_TEST_UNSET_VAR"))
	require.Equal(t, "fallback", GetEnv("SUTBUILD_TEST_UNSET_VAR", "fallback", nil))
}

func TestGetEnvAsIntParsesValue(t *testing.T) {
	t.Setenv("SUTBUILD_TEST_INT", "42")
	require.Equal(t, 42, GetEnvAsInt("SUTBUILD_TEST_INT", 7, nil))
}

func TestGetEnvAsIntFallsBackOnUnparsable(t *testing.T) {
	t.Setenv("SUTBUILD_TEST_INT_BAD", "not-an-int")
	require.Equal(t, 7, GetEnvAsInt("SUTBUILD_TEST_INT_BAD", 7, nil))
}
