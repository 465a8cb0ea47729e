package options

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePayloadHex(t *testing.T) {
	data, err := ParsePayload(" |0121_00C8 FF380064| ", "")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x21, 0x00, 0xC8, 0xFF, 0x38, 0x00, 0x64}, data)

	data, err = ParsePayload("0x012100c8ff380064", EncodingHex)
	require.NoError(t, err)
	require.Len(t, data, 8)
}

func TestParsePayloadHexErrors(t *testing.T) {
	_, err := ParsePayload("ABC", EncodingHex)
	require.Error(t, err)
	require.Contains(t, err.Error(), "even number")

	_, err = ParsePayload("ZZ", EncodingHex)
	require.Error(t, err)
}

func TestParsePayloadBase64(t *testing.T) {
	data, err := ParsePayload("ASEAyP84AGQ=", EncodingBase64)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x21, 0x00, 0xC8, 0xFF, 0x38, 0x00, 0x64}, data)

	_, err = ParsePayload("not base64!", "BASE64")
	require.Error(t, err)
}

func TestParsePayloadUnknownEncoding(t *testing.T) {
	_, err := ParsePayload("00", "ascii85")
	require.Error(t, err)
}

func TestParseVariables(t *testing.T) {
	vars, err := ParseVariables("site=greenhouse, depth = 20 ,")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"site": "greenhouse", "depth": "20"}, vars)

	vars, err = ParseVariables("  ")
	require.NoError(t, err)
	require.Nil(t, vars)

	_, err = ParseVariables("novalue")
	require.Error(t, err)
	_, err = ParseVariables("=x")
	require.Error(t, err)
}

func TestVariablesContext(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, Variables(ctx))
	require.Equal(t, ctx, WithVariables(ctx, nil))

	src := map[string]string{"site": "a"}
	ctx = WithVariables(ctx, src)
	src["site"] = "b"
	require.Equal(t, map[string]string{"site": "a"}, Variables(ctx))
}
