// Package legacy implements the ChirpStack v3 Decode(fPort, bytes, variables)
// codec convention, which returns the object directly and signals failure by
// throwing.
package legacy

import (
	"context"

	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/adapter"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/payload"
)

// Convention is the entry-point name network servers call.
const Convention = "Decode"

func init() {
	adapter.Register(Adapter{})
}

// Adapter returns the bare reading or the decode error.
type Adapter struct{}

// Name returns the convention name.
func (Adapter) Name() string { return Convention }

// Process decodes the uplink. Variables are accepted but not consulted.
func (Adapter) Process(_ context.Context, up *adapter.Uplink) (any, error) {
	reading, err := payload.Decode(up.Bytes, up.FPort)
	if err != nil {
		return nil, err
	}
	return reading, nil
}
