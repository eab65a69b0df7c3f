package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEmptyReturnsDefaults(t *testing.T) {
	opts, err := Decode(nil)
	require.NoError(t, err)
	require.Equal(t, float32(50), opts.Size)
	require.Equal(t, uint8(100), opts.Opacity)
}

func TestDecodeOverridesRecognizedFields(t *testing.T) {
	opts, err := Decode([]byte(`{"size": 80, "opacity": 60, "size_pressure": true, "unknown_field": "ignored"}`))
	require.NoError(t, err)
	require.Equal(t, float32(80), opts.Size)
	require.Equal(t, uint8(60), opts.Opacity)
	require.True(t, opts.SizePressure)
}

func TestDecodeClampsOutOfRangeValues(t *testing.T) {
	opts, err := Decode([]byte(`{"opacity": 500, "hardness": -10}`))
	require.NoError(t, err)
	require.Equal(t, uint8(100), opts.Opacity)
	require.Equal(t, uint8(0), opts.Hardness)
}

func TestDecodeRejectsNonObjectJSON(t *testing.T) {
	_, err := Decode([]byte(`[1,2,3]`))
	require.Error(t, err)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	require.Error(t, err)
}
