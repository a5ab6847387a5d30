package stackasm

import "testing"

func Test_Effect_Classification(t *testing.T) {
	errors := []Effect{
		AssertionFailed, DivisionByZero, IntegerOverflow, InvalidAddress,
		InvalidOperandStackIndex, InvalidReference, OperandStackUnderflow,
		UnknownIdentifier,
	}
	for _, e := range errors {
		if !e.IsError() {
			t.Errorf("%v not classified as error", e)
		}
	}
	for _, e := range []Effect{EffectNone, OutOfOperators, Return, Yield} {
		if e.IsError() {
			t.Errorf("%v classified as error", e)
		}
	}
}

func Test_Effect_Names(t *testing.T) {
	if got := Yield.String(); got != "yield" {
		t.Errorf("got %q", got)
	}
	if got := InvalidOperandStackIndex.String(); got != "invalid operand stack index" {
		t.Errorf("got %q", got)
	}
	if got := Effect(200).String(); got != "unknown effect" {
		t.Errorf("got %q", got)
	}
}
