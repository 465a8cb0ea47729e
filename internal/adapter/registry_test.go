package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type echoAdapter struct{ name string }

func (e echoAdapter) Name() string { return e.name }

func (e echoAdapter) Process(_ context.Context, up *Uplink) (any, error) {
	return up.FPort, nil
}

func TestRegistry(t *testing.T) {
	Register(echoAdapter{name: "zz-echo"})
	Register(echoAdapter{name: "aa-echo"})

	a, err := Lookup("zz-echo")
	require.NoError(t, err)
	out, err := a.Process(context.Background(), &Uplink{FPort: 7})
	require.NoError(t, err)
	require.Equal(t, uint8(7), out)

	names := Names()
	require.Contains(t, names, "aa-echo")
	require.Contains(t, names, "zz-echo")
	require.IsIncreasing(t, names)

	_, err = Lookup("missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), `"missing"`)
}
