// report.go: caret-snippet rendering for triggered effects
//
// The evaluation core never prints. When a host decides to surface an error
// effect, it can use ReportEffect to turn the script's source map into a
// readable, plain-text snippet with a caret pointing at the operator that
// triggered the effect:
//
//	EFFECT at 2:7: division by zero
//
//	   1 | 5 0
//	   2 | @div call
//	     |      ^
//	   3 | yield
//
// Line and column are derived on demand from the operator's byte range in
// the original source; the Script stores byte offsets only.
package stackasm

import (
	"fmt"
	"strings"
)

// ReportEffect renders a caret-annotated snippet of src locating the
// operator at the given index, headed by the effect's name. If the index has
// no source range (for example, OutOfOperators past the end of the script),
// only the header line is returned.
//
// For error effects, the operator that triggered the effect is the one
// before the cursor, since the cursor advances before dispatch:
//
//	if eff := eval.Run(); eff.IsError() {
//		fmt.Fprint(os.Stderr, stackasm.ReportEffect(src, script, eval.NextOperator()-1, eff))
//	}
func ReportEffect(src string, script *Script, at OperatorIndex, effect Effect) string {
	span, ok := script.SourceRange(at)
	if !ok {
		return fmt.Sprintf("EFFECT: %s\n", effect)
	}
	line, col := lineCol(src, span.StartByte)
	return prettySnippet(src, "EFFECT", line, col, effect.String())
}

// lineCol converts a byte offset into 1-based line and column coordinates.
// Columns count bytes, which is exact for the ASCII operator vocabulary.
func lineCol(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// prettySnippet builds a Python-like snippet with a header and a caret. It
// shows at most one previous and one next line when available. Coordinates
// are 1-based and clamped to the source bounds.
func prettySnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
