package soilsensor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/testutil"
)

func TestUplinkGolden(t *testing.T) {
	fixtures := testutil.Fixtures(t, "uplinks", ".hex")
	require.NotEmpty(t, fixtures)
	for _, name := range fixtures {
		name := name
		t.Run(name, func(t *testing.T) {
			hexStr := testutil.LoadHex(t, "uplinks/"+name+".hex")
			result, err := AnalyzeHexWithOptions(context.Background(), hexStr, AnalyzeOptions{Port: 2})
			require.NoError(t, err)

			var expected map[string]any
			testutil.LoadJSON(t, "uplinks/"+name+".json", &expected)
			want, err := json.Marshal(expected)
			require.NoError(t, err)
			got, err := json.Marshal(result.Output)
			require.NoError(t, err)
			require.JSONEq(t, string(want), string(got))
		})
	}
}

func TestUplinkGoldenDeterministic(t *testing.T) {
	for _, name := range testutil.Fixtures(t, "uplinks", ".hex") {
		hexStr := testutil.LoadHex(t, "uplinks/"+name+".hex")
		first, err := AnalyzeHex(context.Background(), hexStr)
		require.NoError(t, err)
		second, err := AnalyzeHex(context.Background(), hexStr)
		require.NoError(t, err)
		require.Equal(t, first, second, name)
	}
}
