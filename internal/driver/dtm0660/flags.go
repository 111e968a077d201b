package dtm0660

import "github.com/d21d3q/godmm/internal/frame"

// FlagSet holds every indicator bit of a frame.
//
//	byte  bit0        bit1     bit2      bit3
//	   0  AC          DC       Auto      RS232
//	   1  Sign        -        -         -
//	   9  Micro       Nano     Kilo      Diode
//	  10  Milli       Percent  Mega      Beep
//	  11  Farad       Ohm      Relative  Hold
//	  12  Ampere      Volt     Hertz     LowBattery
//	  13  Fahrenheit  Celsius  User0     User1
//	  14  AutoOff     Min      MinMax    Max
type FlagSet struct {
	AC    bool
	DC    bool
	Auto  bool
	RS232 bool

	Sign bool

	Micro bool
	Nano  bool
	Kilo  bool
	Diode bool

	Milli   bool
	Percent bool
	Mega    bool
	Beep    bool

	Farad    bool
	Ohm      bool
	Relative bool
	Hold     bool

	Ampere     bool
	Volt       bool
	Hertz      bool
	LowBattery bool

	Fahrenheit  bool
	Celsius     bool
	UserSymbol0 bool
	UserSymbol1 bool

	AutoPowerOff bool
	Min          bool
	MinMax       bool
	Max          bool
}

// ParseFlags reads the indicator bits. It never fails; consistency is
// checked by Validate.
func ParseFlags(f frame.Frame) FlagSet {
	return FlagSet{
		AC:    f.Bit(0, 0),
		DC:    f.Bit(0, 1),
		Auto:  f.Bit(0, 2),
		RS232: f.Bit(0, 3),

		Sign: f.Bit(1, 0),

		Micro: f.Bit(9, 0),
		Nano:  f.Bit(9, 1),
		Kilo:  f.Bit(9, 2),
		Diode: f.Bit(9, 3),

		Milli:   f.Bit(10, 0),
		Percent: f.Bit(10, 1),
		Mega:    f.Bit(10, 2),
		Beep:    f.Bit(10, 3),

		Farad:    f.Bit(11, 0),
		Ohm:      f.Bit(11, 1),
		Relative: f.Bit(11, 2),
		Hold:     f.Bit(11, 3),

		Ampere:     f.Bit(12, 0),
		Volt:       f.Bit(12, 1),
		Hertz:      f.Bit(12, 2),
		LowBattery: f.Bit(12, 3),

		Fahrenheit:  f.Bit(13, 0),
		Celsius:     f.Bit(13, 1),
		UserSymbol0: f.Bit(13, 2),
		UserSymbol1: f.Bit(13, 3),

		AutoPowerOff: f.Bit(14, 0),
		Min:          f.Bit(14, 1),
		MinMax:       f.Bit(14, 2),
		Max:          f.Bit(14, 3),
	}
}

// Validate returns a *FlagError for the first violated rule. Diode, beep and
// the temperature units are not counted as measurement types: the meter lights
// them together with V or Ω.
func (fs FlagSet) Validate() error {
	if countSet(fs.Nano, fs.Micro, fs.Milli, fs.Kilo, fs.Mega) > 1 {
		return &FlagError{Rule: RuleMultiplier}
	}
	if countSet(fs.Hertz, fs.Ohm, fs.Farad, fs.Ampere, fs.Volt, fs.Percent) > 1 {
		return &FlagError{Rule: RuleQuantity}
	}
	if fs.AC && fs.DC {
		return &FlagError{Rule: RuleACDC}
	}
	if !fs.RS232 {
		return &FlagError{Rule: RuleRS232}
	}
	return nil
}

// Valid is the predicate form of Validate.
func (fs FlagSet) Valid() bool {
	return fs.Validate() == nil
}

type namedFlag struct {
	name string
	set  bool
}

func (fs FlagSet) all() []namedFlag {
	return []namedFlag{
		{"ac", fs.AC}, {"dc", fs.DC}, {"auto", fs.Auto}, {"rs232", fs.RS232},
		{"sign", fs.Sign},
		{"micro", fs.Micro}, {"nano", fs.Nano}, {"kilo", fs.Kilo}, {"diode", fs.Diode},
		{"milli", fs.Milli}, {"percent", fs.Percent}, {"mega", fs.Mega}, {"beep", fs.Beep},
		{"farad", fs.Farad}, {"ohm", fs.Ohm}, {"relative", fs.Relative}, {"hold", fs.Hold},
		{"ampere", fs.Ampere}, {"volt", fs.Volt}, {"hertz", fs.Hertz}, {"low_battery", fs.LowBattery},
		{"fahrenheit", fs.Fahrenheit}, {"celsius", fs.Celsius}, {"user_symbol_0", fs.UserSymbol0}, {"user_symbol_1", fs.UserSymbol1},
		{"auto_power_off", fs.AutoPowerOff}, {"min", fs.Min}, {"min_max", fs.MinMax}, {"max", fs.Max},
	}
}

// Map returns the set flags keyed by name.
func (fs FlagSet) Map() map[string]bool {
	return setOnly(fs.all())
}

// Annunciators returns the set display-only indicators that have no bearing
// on the value, quantity or unit.
func (fs FlagSet) Annunciators() map[string]bool {
	return setOnly([]namedFlag{
		{"rs232", fs.RS232},
		{"low_battery", fs.LowBattery},
		{"auto_power_off", fs.AutoPowerOff},
		{"min_max", fs.MinMax},
		{"user_symbol_0", fs.UserSymbol0},
		{"user_symbol_1", fs.UserSymbol1},
	})
}

func setOnly(flags []namedFlag) map[string]bool {
	out := make(map[string]bool)
	for _, f := range flags {
		if f.set {
			out[f.name] = true
		}
	}
	return out
}

func countSet(flags ...bool) int {
	n := 0
	for _, set := range flags {
		if set {
			n++
		}
	}
	return n
}
