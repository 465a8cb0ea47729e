package payload

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Size is the exact length of a soil sensor uplink.
const Size = 8

// ErrInvalidLength is returned when the uplink is not exactly Size bytes long.
var ErrInvalidLength = errors.New("invalid payload length")

// Reading represents one decoded uplink. Values are taken verbatim from the
// wire apart from the fixed /10 scaling of voltage and temperatures.
type Reading struct {
	Header          Header  `json:"header"`
	Voltage         float64 `json:"voltage"`
	TemperatureSoil float64 `json:"temperatureSoil"`
	SoilRaw         int16   `json:"soilRaw"`
	TemperatureCore float64 `json:"temperatureCore"`

	raw [Size]byte
}

// Decode extracts a Reading from raw. The port is accepted so adapters can
// forward the network-server arguments as-is; it does not affect the result.
func Decode(raw []byte, port uint8) (Reading, error) {
	if len(raw) != Size {
		return Reading{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(raw), Size)
	}
	r := reader{buf: raw}
	reading := Reading{
		Header:          Header(r.u8()),
		Voltage:         float64(r.u8()) / 10,
		TemperatureSoil: float64(r.s16()) / 10,
		SoilRaw:         r.s16(),
		TemperatureCore: float64(r.s16()) / 10,
	}
	copy(reading.raw[:], raw)
	return reading, nil
}

// Raw returns the bytes the reading was decoded from.
func (r Reading) Raw() []byte {
	out := make([]byte, Size)
	copy(out, r.raw[:])
	return out
}

// Fields returns the reading keyed by its JSON field names.
func (r Reading) Fields() map[string]any {
	return map[string]any{
		"header":          int(r.Header),
		"voltage":         r.Voltage,
		"temperatureSoil": r.TemperatureSoil,
		"soilRaw":         int(r.SoilRaw),
		"temperatureCore": r.TemperatureCore,
	}
}

var fieldSpans = []struct {
	key        string
	start, end int
}{
	{"voltage", 1, 2},
	{"temperatureSoil", 2, 4},
	{"soilRaw", 4, 6},
	{"temperatureCore", 6, 8},
}

// Unmeasured lists the fields the device left at its 0xFF fill pattern, which
// it does when a sensor produced no sample for the reporting interval. The
// values themselves are still reported unchanged.
func (r Reading) Unmeasured() []string {
	var keys []string
	for _, span := range fieldSpans {
		filled := true
		for _, b := range r.raw[span.start:span.end] {
			if b != 0xFF {
				filled = false
				break
			}
		}
		if filled {
			keys = append(keys, span.key)
		}
	}
	return keys
}

// reader is a forward-only cursor over a single payload. Callers check the
// length up front, so the accessors do not bounds-check.
type reader struct {
	buf    []byte
	cursor int
}

func (r *reader) u8() uint8 {
	v := r.buf[r.cursor]
	r.cursor++
	return v
}

// s16 reads a big-endian two's-complement 16-bit value.
func (r *reader) s16() int16 {
	v := binary.BigEndian.Uint16(r.buf[r.cursor : r.cursor+2])
	r.cursor += 2
	return int16(v)
}
