package dtm0660

import (
	"errors"
	"fmt"
)

var (
	ErrDigit = errors.New("dtm0660: invalid digit")
	ErrFlags = errors.New("dtm0660: inconsistent flags")
)

// DigitError reports a digit byte that is not one of the ten segment
// patterns. Position is the digit index (0 is most significant), or -1 when
// the byte was decoded on its own.
type DigitError struct {
	Position int
	Code     byte
}

func (e *DigitError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("dtm0660: invalid digit byte 0x%02x", e.Code)
	}
	return fmt.Sprintf("dtm0660: invalid digit byte 0x%02x at position %d", e.Code, e.Position)
}

func (e *DigitError) Unwrap() error { return ErrDigit }

// Rule names one of the flag consistency checks.
type Rule string

const (
	RuleMultiplier Rule = "multiplier"
	RuleQuantity   Rule = "quantity"
	RuleACDC       Rule = "ac-dc"
	RuleRS232      Rule = "rs232"
)

var ruleMessages = map[Rule]string{
	RuleMultiplier: "more than one multiplier detected in packet",
	RuleQuantity:   "more than one measurement type detected in packet",
	RuleACDC:       "both AC and DC flags detected in packet",
	RuleRS232:      "no RS232 flag detected in packet",
}

// FlagError reports the first violated flag rule.
type FlagError struct {
	Rule Rule
}

func (e *FlagError) Error() string {
	return "dtm0660: " + ruleMessages[e.Rule]
}

func (e *FlagError) Unwrap() error { return ErrFlags }
