package dtm0660

// LCD truth table, segment bits ordered A F E - B G C D (MSB first). Bit 4
// carries the sign or a decimal point and is masked off before lookup.
var digitCodes = map[byte]int{
	0xEB: 0,
	0x0A: 1,
	0xAD: 2,
	0x8F: 3,
	0x4E: 4,
	0xC7: 5,
	0xE7: 6,
	0x8A: 7,
	0xEF: 8,
	0xCF: 9,
}

// DecodeDigit maps one segment pattern to its decimal digit.
func DecodeDigit(code byte) (int, error) {
	d, ok := digitCodes[code]
	if !ok {
		return 0, &DigitError{Position: -1, Code: code}
	}
	return d, nil
}
