// Package dtm0660 decodes the LCD frames of multimeters built around the
// DTM0660 chip (Dream Tech International). The meter streams 15-byte frames
// one way at 2400 baud, 8N1, without handshaking. The layout resembles the
// FS9721 protocol with one more byte and the nibbles reversed.
package dtm0660

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/d21d3q/godmm/internal/driver"
	"github.com/d21d3q/godmm/internal/frame"
	"github.com/d21d3q/godmm/internal/options"
)

// Serial line settings of the meter's optical/RS232 output.
const (
	BaudRate = 2400
	DataBits = 8
	StopBits = 1
)

func init() {
	driver.Register(Driver{})
}

// Driver implements driver.Driver for DTM0660 frames.
type Driver struct{}

var _ driver.Driver = Driver{}

// Name returns the canonical protocol name.
func (Driver) Name() string { return "dtm0660" }

// Check verifies frame alignment and flag consistency and returns the parsed
// flags. The error is a *frame.SyncError or a *FlagError.
func Check(f frame.Frame) (FlagSet, error) {
	if err := frame.CheckSync(f); err != nil {
		return FlagSet{}, err
	}
	fs := ParseFlags(f)
	if err := fs.Validate(); err != nil {
		return FlagSet{}, err
	}
	return fs, nil
}

// Valid implements driver.Driver. The value digits are not decoded.
func (Driver) Valid(ctx context.Context, f frame.Frame) bool {
	if _, err := Check(f); err != nil {
		options.Logger(ctx).WithError(err).Debug("frame rejected")
		return false
	}
	return true
}

// Process decodes one frame into a reading. Nothing is returned besides the
// error when any stage fails.
func (Driver) Process(ctx context.Context, f frame.Frame) (driver.Reading, error) {
	log := options.Logger(ctx)

	fs, err := Check(f)
	if err != nil {
		log.WithError(err).Debug("frame rejected")
		return driver.Reading{}, err
	}

	value, err := ParseValue(f)
	if err != nil {
		log.WithError(err).Debug("value decode failed")
		return driver.Reading{}, err
	}
	traceValue(log, f, value)

	m := Map(value, fs)
	annunciators := fs.Annunciators()
	if len(annunciators) > 0 {
		log.WithFields(annunciatorFields(annunciators)).Trace("annunciators")
	}
	return driver.Reading{Measurement: m, Annunciators: annunciators}, nil
}

func traceValue(log logrus.Ext1FieldLogger, f frame.Frame, value float64) {
	if OverRange(f) {
		log.WithField("negative", Negative(f)).Trace("display over limit")
		return
	}
	codes := DigitCodes(f)
	log.WithFields(logrus.Fields{
		"digits":        fmt.Sprintf("% x", codes[:]),
		"decimal_point": DecimalPoint(f),
		"negative":      Negative(f),
		"value":         value,
	}).Trace("display value")
}

func annunciatorFields(annunciators map[string]bool) logrus.Fields {
	fields := make(logrus.Fields, len(annunciators))
	for k, v := range annunciators {
		fields[k] = v
	}
	return fields
}
