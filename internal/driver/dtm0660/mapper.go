package dtm0660

import (
	"math"

	"github.com/d21d3q/godmm/internal/measurement"
)

// Map scales value by the lit multiplier and classifies it. fs is expected to
// have passed Validate; if several quantity flags are lit anyway, the last one
// in the order below wins.
func Map(value float64, fs FlagSet) measurement.Measurement {
	switch {
	case fs.Nano:
		value /= 1e9
	case fs.Micro:
		value /= 1e6
	case fs.Milli:
		value /= 1e3
	case fs.Kilo:
		value *= 1e3
	case fs.Mega:
		value *= 1e6
	}

	m := measurement.Measurement{}
	if fs.Volt {
		m.Quantity, m.Unit = measurement.QuantityVoltage, measurement.UnitVolt
	}
	if fs.Ampere {
		m.Quantity, m.Unit = measurement.QuantityCurrent, measurement.UnitAmpere
	}
	if fs.Ohm {
		m.Quantity, m.Unit = measurement.QuantityResistance, measurement.UnitOhm
	}
	if fs.Hertz {
		m.Quantity, m.Unit = measurement.QuantityFrequency, measurement.UnitHertz
	}
	if fs.Farad {
		m.Quantity, m.Unit = measurement.QuantityCapacitance, measurement.UnitFarad
	}
	if fs.Beep {
		m.Quantity, m.Unit = measurement.QuantityContinuity, measurement.UnitBoolean
		// Open circuit reads as overload.
		if math.IsInf(value, 0) {
			value = 0
		} else {
			value = 1
		}
	}
	if fs.Diode {
		m.Quantity, m.Unit = measurement.QuantityVoltage, measurement.UnitVolt
	}
	if fs.Percent {
		m.Quantity, m.Unit = measurement.QuantityDutyCycle, measurement.UnitPercentage
	}
	if fs.Celsius {
		m.Quantity, m.Unit = measurement.QuantityTemperature, measurement.UnitCelsius
	}
	if fs.Fahrenheit {
		m.Quantity, m.Unit = measurement.QuantityTemperature, measurement.UnitFahrenheit
	}
	m.Value = value
	m.Flags = modifiers(fs)
	return m
}

func modifiers(fs FlagSet) measurement.Flag {
	var flags measurement.Flag
	for _, mod := range []struct {
		set  bool
		flag measurement.Flag
	}{
		{fs.AC, measurement.FlagAC},
		{fs.DC, measurement.FlagDC},
		{fs.Auto, measurement.FlagAutoRange},
		{fs.Diode, measurement.FlagDiode},
		{fs.Hold, measurement.FlagHold},
		{fs.Relative, measurement.FlagRelative},
		{fs.Min, measurement.FlagMin},
		{fs.Max, measurement.FlagMax},
	} {
		if mod.set {
			flags |= mod.flag
		}
	}
	return flags
}
