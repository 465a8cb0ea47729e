package payload

import "fmt"

// Header identifies why the device sent the uplink.
type Header uint8

const (
	HeaderBoot        Header = 0x00
	HeaderUpdate      Header = 0x01
	HeaderButtonPress Header = 0x02
)

var headerNames = map[Header]string{
	HeaderBoot:        "BOOT",
	HeaderUpdate:      "UPDATE",
	HeaderButtonPress: "BUTTON_PRESS",
}

// String returns the firmware name of the header.
func (h Header) String() string {
	if name, ok := headerNames[h]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(h))
}

// Known reports whether the firmware defines h.
func (h Header) Known() bool {
	_, ok := headerNames[h]
	return ok
}
