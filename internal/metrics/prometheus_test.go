package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordDecode(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordDecode("decodeUplink", 8, nil)
	m.RecordDecode("decodeUplink", 8, nil)
	m.RecordDecode("Decode", 3, errors.New("short"))

	require.Equal(t, 2.0, testutil.ToFloat64(m.Decodes.WithLabelValues("decodeUplink", OutcomeOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Decodes.WithLabelValues("Decode", OutcomeError)))
	require.Equal(t, 0.0, testutil.ToFloat64(m.Decodes.WithLabelValues("Decode", OutcomeOK)))

	count, err := testutil.GatherAndCount(reg, "soil_payload_bytes")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestNewOnSeparateRegistries(t *testing.T) {
	require.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
