package uplink

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/adapter"
)

func TestProcess(t *testing.T) {
	up := &adapter.Uplink{FPort: 2, Bytes: []byte{0x01, 0x21, 0x00, 0xC8, 0xFF, 0x38, 0x00, 0x64}}
	out, err := Adapter{}.Process(context.Background(), up)
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"data": {"header":1,"voltage":3.3,"temperatureSoil":20,"soilRaw":-200,"temperatureCore":10},
		"warnings": [],
		"errors": []
	}`, string(data))
}

func TestProcessShortPayload(t *testing.T) {
	up := &adapter.Uplink{FPort: 2, Bytes: []byte{0x01, 0x21, 0x00}}
	out, err := Adapter{}.Process(context.Background(), up)
	require.NoError(t, err)

	env, ok := out.(Output)
	require.True(t, ok)
	require.Nil(t, env.Data)
	require.Empty(t, env.Warnings)
	require.Len(t, env.Errors, 1)
	require.Contains(t, env.Errors[0], "invalid payload length")

	data, err := json.Marshal(out)
	require.NoError(t, err)
	require.NotContains(t, string(data), `"data"`)
}

func TestRegistered(t *testing.T) {
	a, err := adapter.Lookup(Convention)
	require.NoError(t, err)
	require.Equal(t, Convention, a.Name())
}
