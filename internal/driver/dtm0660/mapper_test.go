package dtm0660

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d21d3q/godmm/internal/measurement"
)

func TestMapMultipliers(t *testing.T) {
	cases := []struct {
		name string
		fs   FlagSet
		want float64
	}{
		{"none", FlagSet{}, 2.5},
		{"nano", FlagSet{Nano: true}, 2.5e-9},
		{"micro", FlagSet{Micro: true}, 2.5e-6},
		{"milli", FlagSet{Milli: true}, 2.5e-3},
		{"kilo", FlagSet{Kilo: true}, 2.5e3},
		{"mega", FlagSet{Mega: true}, 2.5e6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Map(2.5, tc.fs)
			require.InEpsilon(t, tc.want, m.Value, 1e-12)
		})
	}
}

func TestMapQuantities(t *testing.T) {
	cases := []struct {
		name     string
		fs       FlagSet
		quantity measurement.Quantity
		unit     measurement.Unit
	}{
		{"none", FlagSet{}, measurement.QuantityUnknown, measurement.UnitUnknown},
		{"volt", FlagSet{Volt: true}, measurement.QuantityVoltage, measurement.UnitVolt},
		{"ampere", FlagSet{Ampere: true}, measurement.QuantityCurrent, measurement.UnitAmpere},
		{"ohm", FlagSet{Ohm: true}, measurement.QuantityResistance, measurement.UnitOhm},
		{"hertz", FlagSet{Hertz: true}, measurement.QuantityFrequency, measurement.UnitHertz},
		{"farad", FlagSet{Farad: true}, measurement.QuantityCapacitance, measurement.UnitFarad},
		{"beep", FlagSet{Beep: true}, measurement.QuantityContinuity, measurement.UnitBoolean},
		{"diode", FlagSet{Diode: true}, measurement.QuantityVoltage, measurement.UnitVolt},
		{"percent", FlagSet{Percent: true}, measurement.QuantityDutyCycle, measurement.UnitPercentage},
		{"celsius", FlagSet{Celsius: true}, measurement.QuantityTemperature, measurement.UnitCelsius},
		{"fahrenheit", FlagSet{Fahrenheit: true}, measurement.QuantityTemperature, measurement.UnitFahrenheit},
		{"beep overrides ohm", FlagSet{Ohm: true, Beep: true}, measurement.QuantityContinuity, measurement.UnitBoolean},
		{"diode overrides volt", FlagSet{Volt: true, Diode: true}, measurement.QuantityVoltage, measurement.UnitVolt},
		{"fahrenheit overrides celsius", FlagSet{Celsius: true, Fahrenheit: true}, measurement.QuantityTemperature, measurement.UnitFahrenheit},
		{"percent overrides hertz", FlagSet{Hertz: true, Percent: true}, measurement.QuantityDutyCycle, measurement.UnitPercentage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Map(1, tc.fs)
			require.Equal(t, tc.quantity, m.Quantity)
			require.Equal(t, tc.unit, m.Unit)
		})
	}
}

func TestMapContinuityCollapse(t *testing.T) {
	require.Equal(t, 0.0, Map(math.Inf(1), FlagSet{Beep: true}).Value)
	require.Equal(t, 0.0, Map(math.Inf(-1), FlagSet{Beep: true}).Value)
	require.Equal(t, 1.0, Map(12.3, FlagSet{Beep: true}).Value)
	require.Equal(t, 1.0, Map(0, FlagSet{Beep: true}).Value)
	require.Equal(t, 1.0, Map(0.5, FlagSet{Beep: true, Milli: true}).Value)
}

func TestMapOverRangeStaysInfinite(t *testing.T) {
	m := Map(math.Inf(-1), FlagSet{Ohm: true, Mega: true})
	require.True(t, math.IsInf(m.Value, -1))
}

func TestMapModifiers(t *testing.T) {
	m := Map(1, FlagSet{
		AC: true, Auto: true, Diode: true, Hold: true, Relative: true, Min: true, Max: true,
		LowBattery: true, AutoPowerOff: true, MinMax: true, RS232: true, UserSymbol0: true,
	})
	require.Equal(t, measurement.FlagAC|measurement.FlagAutoRange|measurement.FlagDiode|
		measurement.FlagHold|measurement.FlagRelative|measurement.FlagMin|measurement.FlagMax, m.Flags)

	require.Equal(t, measurement.FlagDC, Map(1, FlagSet{DC: true}).Flags)
	require.Equal(t, measurement.Flag(0), Map(1, FlagSet{}).Flags)
}
