package dtm0660

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d21d3q/godmm/internal/testutil"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		name    string
		builder *testutil.FrameBuilder
		want    float64
	}{
		{"decimal after third digit", testutil.NewFrame().Digits(1, 2, 3, 4).DecimalPoint(3), 123.4},
		{"decimal after second digit", testutil.NewFrame().Digits(1, 2, 3, 4).DecimalPoint(2), 12.34},
		{"decimal after first digit", testutil.NewFrame().Digits(1, 2, 3, 4).DecimalPoint(1), 1.234},
		{"no decimal point", testutil.NewFrame().Digits(5, 6, 7, 8), 5678},
		{"negative integer", testutil.NewFrame().Digits(0, 0, 0, 1).Negative(), -1},
		{"negative fraction", testutil.NewFrame().Digits(9, 0, 0, 9).DecimalPoint(1).Negative(), -9.009},
		{"first decimal point wins", testutil.NewFrame().Digits(1, 0, 0, 0).DecimalPoint(2).DecimalPoint(3), 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ParseValue(tc.builder.Build())
			require.NoError(t, err)
			require.InDelta(t, tc.want, v, 1e-9)
		})
	}
}

func TestParseValueExact(t *testing.T) {
	v, err := ParseValue(testutil.NewFrame().Digits(1, 2, 3, 4).DecimalPoint(3).Build())
	require.NoError(t, err)
	require.Equal(t, 123.4, v)

	v, err = ParseValue(testutil.NewFrame().Digits(0, 0, 0, 1).Negative().Build())
	require.NoError(t, err)
	require.Equal(t, -1.0, v)
}

func TestParseValueOverRange(t *testing.T) {
	f := testutil.NewFrame().OverRange().Build()
	require.Equal(t, testutil.OverRangeCodes, DigitCodes(f))
	require.True(t, OverRange(f))

	v, err := ParseValue(f)
	require.NoError(t, err)
	require.True(t, math.IsInf(v, 1))

	v, err = ParseValue(testutil.NewFrame().OverRange().Negative().Build())
	require.NoError(t, err)
	require.True(t, math.IsInf(v, -1))

	// Decimal point bits share the merged byte bit 4 and must not disturb
	// the overload pattern.
	v, err = ParseValue(testutil.NewFrame().OverRange().DecimalPoint(2).Build())
	require.NoError(t, err)
	require.True(t, math.IsInf(v, 1))
}

func TestParseValueInvalidDigit(t *testing.T) {
	f := testutil.NewFrame().Codes([4]byte{0xEB, 0xEB, 0x61, 0xEB}).Build()
	_, err := ParseValue(f)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDigit))
	var digitErr *DigitError
	require.True(t, errors.As(err, &digitErr))
	require.Equal(t, 2, digitErr.Position)
	require.Equal(t, byte(0x61), digitErr.Code)
}

func TestParseValuePartialOverRangeFails(t *testing.T) {
	f := testutil.NewFrame().Codes([4]byte{0x00, 0xEB, 0x61, 0xEB}).Build()
	_, err := ParseValue(f)
	require.ErrorIs(t, err, ErrDigit)
}

func TestDigitCodesMaskBit4(t *testing.T) {
	f := testutil.NewFrame().Digits(8, 8, 8, 8).Negative().DecimalPoint(1).DecimalPoint(2).DecimalPoint(3).Build()
	require.Equal(t, [4]byte{0xEF, 0xEF, 0xEF, 0xEF}, DigitCodes(f))
	require.True(t, Negative(f))
	require.Equal(t, 1, DecimalPoint(f))
}
