package testutil

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/d21d3q/godmm/internal/frame"
)

var segments = [10]byte{0xEB, 0x0A, 0xAD, 0x8F, 0x4E, 0xC7, 0xE7, 0x8A, 0xEF, 0xCF}

// OverRangeCodes is the "0L" pattern.
var OverRangeCodes = [4]byte{0x00, 0xEB, 0x61, 0x00}

type bitPos struct {
	index int
	bit   uint
}

var flagBits = map[string]bitPos{
	"ac": {0, 0}, "dc": {0, 1}, "auto": {0, 2}, "rs232": {0, 3},
	"sign":  {1, 0},
	"micro": {9, 0}, "nano": {9, 1}, "kilo": {9, 2}, "diode": {9, 3},
	"milli": {10, 0}, "percent": {10, 1}, "mega": {10, 2}, "beep": {10, 3},
	"farad": {11, 0}, "ohm": {11, 1}, "relative": {11, 2}, "hold": {11, 3},
	"ampere": {12, 0}, "volt": {12, 1}, "hertz": {12, 2}, "low_battery": {12, 3},
	"fahrenheit": {13, 0}, "celsius": {13, 1}, "user_symbol_0": {13, 2}, "user_symbol_1": {13, 3},
	"auto_power_off": {14, 0}, "min": {14, 1}, "min_max": {14, 2}, "max": {14, 3},
}

// FlagNames lists every indicator name understood by With.
func FlagNames() []string {
	names := make([]string, 0, len(flagBits))
	for name := range flagBits {
		names = append(names, name)
	}
	return names
}

// FrameBuilder assembles synthetic DTM0660 frames bit by bit. Sync nibbles
// are filled in by Build.
type FrameBuilder struct {
	payload [frame.Size]byte
}

// NewFrame starts a frame with the RS232 marker set and the display showing
// 0000.
func NewFrame() *FrameBuilder {
	b := &FrameBuilder{}
	b.With("rs232")
	return b.Digits(0, 0, 0, 0)
}

// Set lights payload bit n of byte index.
func (b *FrameBuilder) Set(index int, n uint) *FrameBuilder {
	b.payload[index] |= 1 << n
	return b
}

// Clear turns payload bit n of byte index off.
func (b *FrameBuilder) Clear(index int, n uint) *FrameBuilder {
	b.payload[index] &^= 1 << n
	return b
}

// With lights the named indicators. Unknown names panic.
func (b *FrameBuilder) With(names ...string) *FrameBuilder {
	for _, name := range names {
		pos, ok := flagBits[name]
		if !ok {
			panic(fmt.Sprintf("testutil: unknown flag %q", name))
		}
		b.Set(pos.index, pos.bit)
	}
	return b
}

// Without turns the named indicators off.
func (b *FrameBuilder) Without(names ...string) *FrameBuilder {
	for _, name := range names {
		pos, ok := flagBits[name]
		if !ok {
			panic(fmt.Sprintf("testutil: unknown flag %q", name))
		}
		b.Clear(pos.index, pos.bit)
	}
	return b
}

// Codes writes raw segment patterns for the four digits. Bit 4 of each code
// lands on the sign/decimal point bit and is ignored.
func (b *FrameBuilder) Codes(codes [4]byte) *FrameBuilder {
	for i, code := range codes {
		upper := 1 + i*2
		b.payload[upper] = b.payload[upper]&0x01 | (code>>4)&0x0E
		b.payload[upper+1] = code & 0x0F
	}
	return b
}

// Digits writes four decimal digits, most significant first.
func (b *FrameBuilder) Digits(d0, d1, d2, d3 int) *FrameBuilder {
	return b.Codes([4]byte{segments[d0], segments[d1], segments[d2], segments[d3]})
}

// OverRange shows "0L".
func (b *FrameBuilder) OverRange() *FrameBuilder {
	return b.Codes(OverRangeCodes)
}

// Negative lights the minus sign.
func (b *FrameBuilder) Negative() *FrameBuilder {
	return b.Set(1, 0)
}

// DecimalPoint lights the decimal point after digit pos (1..3).
func (b *FrameBuilder) DecimalPoint(pos int) *FrameBuilder {
	return b.Set(1+pos*2, 0)
}

// Build returns the frame with sync nibbles applied.
func (b *FrameBuilder) Build() frame.Frame {
	var f frame.Frame
	for i := range f {
		f[i] = byte(i+1)<<4 | b.payload[i]&0x0F
	}
	return f
}

// Bytes returns the built frame as a fresh slice.
func (b *FrameBuilder) Bytes() []byte {
	f := b.Build()
	return append([]byte(nil), f[:]...)
}

// Hex returns the built frame as upper-case hex without separators.
func (b *FrameBuilder) Hex() string {
	return strings.ToUpper(hex.EncodeToString(b.Bytes()))
}
