package soilsensor

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/adapter"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/adapter/legacy"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/adapter/uplink"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/payload"
)

type (
	// Reading is a decoded soil sensor uplink.
	Reading = payload.Reading
	// Header identifies why the device sent the uplink.
	Header = payload.Header
	// Envelope is the decodeUplink return value.
	Envelope = uplink.Output
)

// Codec conventions understood by AnalyzeHexWithOptions.
const (
	ConventionDecodeUplink = uplink.Convention
	ConventionDecode       = legacy.Convention
)

// PayloadSize is the exact length of a valid uplink.
const PayloadSize = payload.Size

// ErrInvalidLength is returned when the payload is not PayloadSize bytes.
var ErrInvalidLength = payload.ErrInvalidLength

// Decode is the canonical decoder. Port is accepted for calling-convention
// compatibility and ignored.
func Decode(raw []byte, port uint8) (Reading, error) {
	return payload.Decode(raw, port)
}

// Result captures the outcome of AnalyzeHex.
type Result struct {
	Convention string
	RawHex     string
	ByteCount  int
	Port       uint8
	Reading    *Reading
	Fields     map[string]any
	Output     any
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"convention": r.Convention,
		"byte_count": r.ByteCount,
		"raw_hex":    r.RawHex,
		"port":       r.Port,
	}
	if r.Reading != nil {
		if r.Reading.Header.Known() {
			summary["header_name"] = r.Reading.Header.String()
		}
		if unmeasured := r.Reading.Unmeasured(); len(unmeasured) > 0 {
			summary["unmeasured"] = unmeasured
		}
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	if env, ok := r.Output.(Envelope); ok && len(env.Errors) > 0 {
		summary["errors"] = env.Errors
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("convention: %s bytes:%d raw:%s (marshal error: %v)", r.Convention, r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

// AnalyzeHex decodes a hex payload with the default options.
func AnalyzeHex(ctx context.Context, raw string) (Result, error) {
	return AnalyzeHexWithOptions(ctx, raw, AnalyzeOptions{})
}

// AnalyzeHexWithOptions decodes the payload text through the selected codec
// convention. Under decodeUplink a malformed payload is reported in the
// envelope, not as an error.
func AnalyzeHexWithOptions(ctx context.Context, raw string, opts AnalyzeOptions) (Result, error) {
	ctx, up, adp, err := opts.toInternal(ctx, raw)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Convention: adp.Name(),
		RawHex:     strings.ToUpper(hex.EncodeToString(up.Bytes)),
		ByteCount:  len(up.Bytes),
		Port:       up.FPort,
	}

	out, err := adp.Process(ctx, up)
	if err != nil {
		return result, err
	}
	result.Output = out
	switch v := out.(type) {
	case Envelope:
		result.Reading = v.Data
	case Reading:
		result.Reading = &v
	}
	if result.Reading != nil {
		result.Fields = result.Reading.Fields()
	}
	return result, nil
}

// Conventions lists the registered codec conventions.
func Conventions() []string {
	return adapter.Names()
}
