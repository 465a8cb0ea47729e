package soilsensor

import (
	"context"

	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/adapter"
	internalopts "github.com/hardwario/twr-lora-soil-moisture-sensor/internal/options"
)

// AnalyzeOptions configures decoding.
type AnalyzeOptions struct {
	// Convention defaults to decodeUplink.
	Convention string
	Port       uint8
	// Encoding of the payload text, hex (default) or base64.
	Encoding  string
	Variables map[string]string
}

func (opts AnalyzeOptions) toInternal(ctx context.Context, raw string) (context.Context, *adapter.Uplink, adapter.Adapter, error) {
	convention := opts.Convention
	if convention == "" {
		convention = ConventionDecodeUplink
	}
	adp, err := adapter.Lookup(convention)
	if err != nil {
		return ctx, nil, nil, err
	}
	data, err := internalopts.ParsePayload(raw, opts.Encoding)
	if err != nil {
		return ctx, nil, nil, err
	}
	ctx = internalopts.WithVariables(ctx, opts.Variables)
	up := &adapter.Uplink{
		FPort:     opts.Port,
		Bytes:     data,
		Variables: internalopts.Variables(ctx),
	}
	return ctx, up, adp, nil
}
