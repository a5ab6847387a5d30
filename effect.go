package stackasm

// Effect is a typed signal triggered by a script to communicate a specific
// condition to its host. The effect itself only relays which condition has
// triggered; it may signal to the host that another communication channel
// (the operand stack or memory) is ready to be accessed.
//
// Most effects signal error conditions the script would not expect to recover
// from; abandoning the evaluation and reporting the error is the only
// reasonable way to handle them. The exceptions are OutOfOperators and Return,
// which signal the regular end of evaluation, and Yield, after which a script
// expects to continue. To make that possible, the host must clear the effect
// (see Eval.HandleEffect and Eval.ClearEffect).
type Effect uint8

const (
	// EffectNone is the absence of an effect; evaluation may make progress.
	EffectNone Effect = iota

	// AssertionFailed triggers when `assert` consumes a zero input.
	AssertionFailed

	// DivisionByZero triggers when the second input of `/` is zero.
	DivisionByZero

	// IntegerOverflow triggers when `/` divides the lowest signed 32-bit
	// integer by -1. All other arithmetic operators wrap on overflow and
	// never trigger this effect.
	IntegerOverflow

	// InvalidAddress triggers when the address input of `read` or `write`,
	// interpreted as an unsigned integer, is out of the memory's bounds.
	InvalidAddress

	// InvalidOperandStackIndex triggers when the index input of `copy` or
	// `drop` does not refer to a value on the operand stack.
	InvalidOperandStackIndex

	// InvalidReference triggers when a reference is evaluated that is not
	// paired with a matching label.
	InvalidReference

	// OperandStackUnderflow triggers when an operator has more inputs than
	// the number of values currently on the operand stack.
	OperandStackUnderflow

	// OutOfOperators triggers when evaluation reaches the end of the script.
	// This is not an error; it is one of the regular ways for evaluation to
	// end, alongside Return.
	OutOfOperators

	// Return triggers when `return` is evaluated while the call stack is
	// empty. This is not an error; it is one of the regular ways for
	// evaluation to end, alongside OutOfOperators.
	Return

	// UnknownIdentifier triggers when an identifier is evaluated that does
	// not refer to a known operation.
	UnknownIdentifier

	// Yield triggers when the script yields control to the host.
	Yield
)

var effectNames = [...]string{
	EffectNone:               "none",
	AssertionFailed:          "assertion failed",
	DivisionByZero:           "division by zero",
	IntegerOverflow:          "integer overflow",
	InvalidAddress:           "invalid address",
	InvalidOperandStackIndex: "invalid operand stack index",
	InvalidReference:         "invalid reference",
	OperandStackUnderflow:    "operand stack underflow",
	OutOfOperators:           "out of operators",
	Return:                   "return",
	UnknownIdentifier:        "unknown identifier",
	Yield:                    "yield",
}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return "unknown effect"
}

// IsError reports whether the effect signals an error condition, as opposed
// to regular termination (OutOfOperators, Return) or suspension (Yield).
func (e Effect) IsError() bool {
	switch e {
	case EffectNone, OutOfOperators, Return, Yield:
		return false
	default:
		return true
	}
}
