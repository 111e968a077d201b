package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/d21d3q/godmm/internal/frame"
)

type stubDriver struct{ name string }

func (d stubDriver) Name() string { return d.name }
func (stubDriver) Valid(context.Context, frame.Frame) bool { return true }
func (stubDriver) Process(context.Context, frame.Frame) (Reading, error) {
	return Reading{}, nil
}

func TestRegisterLookup(t *testing.T) {
	Register(stubDriver{name: "stub-a"})
	Register(stubDriver{name: "stub-b"})

	drv, err := Lookup("stub-a")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if drv.Name() != "stub-a" {
		t.Fatalf("unexpected driver %s", drv.Name())
	}

	names := Names()
	if len(names) < 2 || names[0] != "stub-a" || names[1] != "stub-b" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("nope")
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}
