package adapter

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Uplink is the message a network server hands to a payload codec.
type Uplink struct {
	FPort     uint8             `json:"fPort"`
	Bytes     []byte            `json:"bytes"`
	Variables map[string]string `json:"variables,omitempty"`
}

// Adapter binds the payload decoder to one network-server calling convention.
type Adapter interface {
	Name() string
	Process(context.Context, *Uplink) (any, error)
}

var (
	regMu    sync.RWMutex
	registry = map[string]Adapter{}
)

// Register stores an adapter under its name, replacing any previous entry.
func Register(a Adapter) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[a.Name()] = a
}

// Lookup returns the adapter registered under name.
func Lookup(name string) (Adapter, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	if a, ok := registry[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("adapter not found for convention %q", name)
}

// Names lists the registered conventions in lexical order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
