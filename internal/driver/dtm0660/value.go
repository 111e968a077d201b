package dtm0660

import (
	"math"

	"github.com/d21d3q/godmm/internal/frame"
)

const (
	digitCount = 4
	signByte   = 1
	// digitBit4 is the merged-byte bit that holds the sign or a decimal
	// point rather than a segment.
	digitBit4 = 1 << 4
)

// "0L" on the LCD.
var overRangeCodes = [digitCount]byte{0x00, 0xEB, 0x61, 0x00}

// Decimal point bits in display order, each bit 0 of its byte.
var decimalPoints = [...]struct {
	index   int
	divisor float64
}{
	{3, 1000},
	{5, 100},
	{7, 10},
}

// DigitCodes merges the payload nibbles of bytes 1-8 into the four segment
// patterns, most significant digit first.
func DigitCodes(f frame.Frame) [digitCount]byte {
	var codes [digitCount]byte
	for i := range codes {
		upper := 1 + i*2
		codes[i] = (f.Low(upper)<<4 | f.Low(upper+1)) &^ digitBit4
	}
	return codes
}

// OverRange reports whether the display shows the "0L" overload pattern.
func OverRange(f frame.Frame) bool {
	return DigitCodes(f) == overRangeCodes
}

// Negative reports whether the minus sign is lit.
func Negative(f frame.Frame) bool {
	return f.Bit(signByte, 0)
}

// DecimalPoint returns the number of digits left of the decimal point
// (1..3), or 0 when no decimal point is lit.
func DecimalPoint(f frame.Frame) int {
	for i, dp := range decimalPoints {
		if f.Bit(dp.index, 0) {
			return i + 1
		}
	}
	return 0
}

// ParseValue assembles the signed display value. Overload yields an infinity
// carrying the display sign.
func ParseValue(f frame.Frame) (float64, error) {
	negative := Negative(f)
	codes := DigitCodes(f)
	if codes == overRangeCodes {
		if negative {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	}

	intval := 0
	for i, code := range codes {
		d, err := DecodeDigit(code)
		if err != nil {
			return 0, &DigitError{Position: i, Code: code}
		}
		intval = intval*10 + d
	}

	value := float64(intval)
	if dp := DecimalPoint(f); dp > 0 {
		value /= decimalPoints[dp-1].divisor
	}
	if negative {
		value *= -1
	}
	return value, nil
}
