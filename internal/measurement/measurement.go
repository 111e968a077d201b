package measurement

import (
	"fmt"
	"strings"
)

// Quantity is the physical quantity a reading measures.
type Quantity int

const (
	QuantityUnknown Quantity = iota
	QuantityVoltage
	QuantityCurrent
	QuantityResistance
	QuantityFrequency
	QuantityCapacitance
	QuantityContinuity
	QuantityDutyCycle
	QuantityTemperature
)

var quantityNames = [...]string{
	QuantityUnknown:     "unknown",
	QuantityVoltage:     "voltage",
	QuantityCurrent:     "current",
	QuantityResistance:  "resistance",
	QuantityFrequency:   "frequency",
	QuantityCapacitance: "capacitance",
	QuantityContinuity:  "continuity",
	QuantityDutyCycle:   "duty_cycle",
	QuantityTemperature: "temperature",
}

func (q Quantity) String() string {
	if q < 0 || int(q) >= len(quantityNames) {
		return fmt.Sprintf("quantity(%d)", int(q))
	}
	return quantityNames[q]
}

// MarshalText implements encoding.TextMarshaler.
func (q Quantity) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// Unit is the unit a reading's value is expressed in.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitVolt
	UnitAmpere
	UnitOhm
	UnitHertz
	UnitFarad
	UnitBoolean
	UnitPercentage
	UnitCelsius
	UnitFahrenheit
)

var unitNames = [...]string{
	UnitUnknown:    "unknown",
	UnitVolt:       "volt",
	UnitAmpere:     "ampere",
	UnitOhm:        "ohm",
	UnitHertz:      "hertz",
	UnitFarad:      "farad",
	UnitBoolean:    "boolean",
	UnitPercentage: "percentage",
	UnitCelsius:    "celsius",
	UnitFahrenheit: "fahrenheit",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("unit(%d)", int(u))
	}
	return unitNames[u]
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// Flag is a set of measurement modifiers shown on the meter's display.
type Flag uint32

const (
	FlagAC Flag = 1 << iota
	FlagDC
	FlagAutoRange
	FlagDiode
	FlagHold
	FlagRelative
	FlagMin
	FlagMax
)

var flagDefs = []struct {
	flag Flag
	name string
}{
	{FlagAC, "ac"},
	{FlagDC, "dc"},
	{FlagAutoRange, "autorange"},
	{FlagDiode, "diode"},
	{FlagHold, "hold"},
	{FlagRelative, "relative"},
	{FlagMin, "min"},
	{FlagMax, "max"},
}

// Has reports whether all bits of other are set in f.
func (f Flag) Has(other Flag) bool {
	return f&other == other
}

// Names returns the names of the set flags in declaration order.
func (f Flag) Names() []string {
	names := make([]string, 0, len(flagDefs))
	for _, def := range flagDefs {
		if f&def.flag != 0 {
			names = append(names, def.name)
		}
	}
	return names
}

func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	return strings.Join(f.Names(), "|")
}

// MarshalText implements encoding.TextMarshaler.
func (f Flag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Measurement is a fully decoded reading. It is only ever produced for a
// frame that decoded without error.
type Measurement struct {
	Value    float64
	Quantity Quantity
	Unit     Unit
	Flags    Flag
}

func (m Measurement) String() string {
	return fmt.Sprintf("%g %s (%s) [%s]", m.Value, m.Unit, m.Quantity, m.Flags)
}
