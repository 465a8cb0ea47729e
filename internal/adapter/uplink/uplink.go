// Package uplink implements the decodeUplink codec convention shared by The
// Things Stack v3 and ChirpStack v4.
package uplink

import (
	"context"

	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/adapter"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/payload"
)

// Convention is the entry-point name network servers call.
const Convention = "decodeUplink"

func init() {
	adapter.Register(Adapter{})
}

// Output is the envelope decodeUplink returns.
type Output struct {
	Data     *payload.Reading `json:"data,omitempty"`
	Warnings []string         `json:"warnings"`
	Errors   []string         `json:"errors"`
}

// Adapter reports decode failures inside the envelope instead of failing.
type Adapter struct{}

// Name returns the convention name.
func (Adapter) Name() string { return Convention }

// Process decodes the uplink. The returned error is always nil; callers
// inspect Output.Errors.
func (Adapter) Process(_ context.Context, up *adapter.Uplink) (any, error) {
	out := Output{Warnings: []string{}, Errors: []string{}}
	reading, err := payload.Decode(up.Bytes, up.FPort)
	if err != nil {
		out.Errors = append(out.Errors, err.Error())
		return out, nil
	}
	out.Data = &reading
	return out, nil
}
