package stackasm

import "testing"

func Test_ReportEffect_SingleLine(t *testing.T) {
	src := "5 0 /"
	script := Compile(src)
	eval := NewEval(script)

	effect := eval.Run()
	if effect != DivisionByZero {
		t.Fatalf("want DivisionByZero, got %v", effect)
	}

	got := ReportEffect(src, script, eval.NextOperator()-1, effect)
	want := "EFFECT at 1:5: division by zero\n" +
		"\n" +
		"   1 | 5 0 /\n" +
		"     |     ^\n"
	if got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_ReportEffect_ShowsContextLines(t *testing.T) {
	src := "5 0\n/ yield\n1"
	script := Compile(src)
	eval := NewEval(script)

	effect := eval.Run()
	if effect != DivisionByZero {
		t.Fatalf("want DivisionByZero, got %v", effect)
	}

	got := ReportEffect(src, script, eval.NextOperator()-1, effect)
	want := "EFFECT at 2:1: division by zero\n" +
		"\n" +
		"   1 | 5 0\n" +
		"   2 | / yield\n" +
		"     | ^\n" +
		"   3 | 1\n"
	if got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func Test_ReportEffect_IndexWithoutSourceRange(t *testing.T) {
	src := "1 2 +"
	script := Compile(src)

	// OutOfOperators triggers past the end of the script, where no operator
	// and no source range exist; only the header is rendered.
	got := ReportEffect(src, script, OperatorIndex(script.NumOperators()), OutOfOperators)
	if got != "EFFECT: out of operators\n" {
		t.Fatalf("got: %q", got)
	}
}
