package driver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/d21d3q/godmm/internal/frame"
	"github.com/d21d3q/godmm/internal/measurement"
)

var ErrUnknownDriver = errors.New("driver: unknown protocol")

// Reading is what a driver produces for one accepted frame.
type Reading struct {
	Measurement measurement.Measurement
	// Annunciators holds display-only indicators that do not change the
	// value, keyed by name. Only set indicators are present.
	Annunciators map[string]bool
}

// Driver decodes frames of one meter protocol.
type Driver interface {
	Name() string
	// Valid checks alignment and flag consistency without decoding the value.
	Valid(context.Context, frame.Frame) bool
	Process(context.Context, frame.Frame) (Reading, error)
}

var (
	regMu    sync.RWMutex
	registry = map[string]Driver{}
)

// Register stores a driver under its name. Registering the same name twice
// replaces the earlier driver.
func Register(drv Driver) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[drv.Name()] = drv
}

// Lookup returns the driver registered under name.
func Lookup(name string) (Driver, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	drv, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, name)
	}
	return drv, nil
}

// Names lists registered protocol names in sorted order.
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
