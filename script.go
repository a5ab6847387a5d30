package stackasm

import (
	"strconv"
	"strings"
	"unicode"
)

// OperatorIndex addresses a position in a compiled script's operator
// sequence. Indices are stable for the lifetime of the Script.
type OperatorIndex uint32

// OperatorKind represents the kind of operator.
type OperatorKind int

const (
	// OpIdentifier is a mnemonic, matched against the builtin vocabulary
	// at evaluation time.
	OpIdentifier OperatorKind = iota

	// OpInteger is a 32-bit integer literal.
	OpInteger

	// OpReference is a name reference, resolved to the operator index of a
	// matching label at evaluation time.
	OpReference
)

// Operator is a compiled, indexable unit of execution.
type Operator struct {
	Kind  OperatorKind
	Name  string // identifier text or reference name
	Value Value  // integer literal value
}

// Label assigns a name to the operator it precedes in source order. Labels
// exist only at compile time; they have no runtime representation and do not
// occupy an operator slot.
type Label struct {
	Name   string
	Target OperatorIndex
}

// Span is a half-open byte interval [StartByte, EndByte) in the original
// source text. Line/column coordinates are not stored; callers derive them
// on demand from the source.
type Span struct {
	StartByte int // inclusive
	EndByte   int // exclusive
}

// Script is an immutable compiled program: an ordered operator sequence, a
// label table, and a source map from operator index to originating bytes.
type Script struct {
	operators []Operator
	labels    []Label
	spans     []Span // parallel to operators
}

// scanner states
type scanState int

const (
	scanInitial scanState = iota
	scanComment
	scanToken
)

// Compile scans source text into a script. It is total: it never fails, for
// any input. Unparseable or unknown tokens compile to identifiers, deferring
// error detection to evaluation time (UnknownIdentifier).
func Compile(source string) *Script {
	s := &Script{}

	state := scanInitial
	tokenStart := 0

	for i, r := range source {
		switch state {
		case scanInitial:
			switch {
			case unicode.IsSpace(r):
				// skip
			case r == '#':
				state = scanComment
			default:
				tokenStart = i
				state = scanToken
			}
		case scanComment:
			if r == '\n' {
				state = scanInitial
			}
		case scanToken:
			if unicode.IsSpace(r) {
				s.emit(source[tokenStart:i], tokenStart, i)
				state = scanInitial
			}
		}
	}
	if state == scanToken {
		s.emit(source[tokenStart:], tokenStart, len(source))
	}

	return s
}

// emit classifies one token and records it as a label or appends it as an
// operator, registering the operator's byte range in the source map.
func (s *Script) emit(token string, start, end int) {
	if name, ok := strings.CutSuffix(token, ":"); ok && name != "" {
		s.labels = append(s.labels, Label{
			Name:   name,
			Target: OperatorIndex(len(s.operators)),
		})
		return
	}

	op := classify(token)
	s.operators = append(s.operators, op)
	s.spans = append(s.spans, Span{StartByte: start, EndByte: end})
}

func classify(token string) Operator {
	if name, ok := strings.CutPrefix(token, "@"); ok {
		return Operator{Kind: OpReference, Name: name}
	}

	if digits, ok := strings.CutPrefix(token, "0x"); ok {
		if v, err := strconv.ParseInt(digits, 16, 32); err == nil {
			return Operator{Kind: OpInteger, Value: FromI32(int32(v))}
		}
		if v, err := strconv.ParseUint(digits, 16, 32); err == nil {
			return Operator{Kind: OpInteger, Value: FromU32(uint32(v))}
		}
	}

	if v, err := strconv.ParseInt(token, 10, 32); err == nil {
		return Operator{Kind: OpInteger, Value: FromI32(int32(v))}
	}
	// Values in the upper half of the 32-bit range don't parse as signed
	// integers, but are still valid literals.
	if v, err := strconv.ParseUint(token, 10, 32); err == nil {
		return Operator{Kind: OpInteger, Value: FromU32(uint32(v))}
	}

	return Operator{Kind: OpIdentifier, Name: token}
}

// Operator returns the operator at the given index. The second return is
// false if the index is past the end of the script.
func (s *Script) Operator(idx OperatorIndex) (Operator, bool) {
	if uint64(idx) >= uint64(len(s.operators)) {
		return Operator{}, false
	}
	return s.operators[idx], true
}

// NumOperators returns the number of operators in the script.
func (s *Script) NumOperators() int { return len(s.operators) }

// Operators returns a copy of the script's operator sequence. The slice
// index of each element is its OperatorIndex.
func (s *Script) Operators() []Operator {
	out := make([]Operator, len(s.operators))
	copy(out, s.operators)
	return out
}

// Labels returns a copy of the script's label table, in source order.
func (s *Script) Labels() []Label {
	out := make([]Label, len(s.labels))
	copy(out, s.labels)
	return out
}

// ResolveReference returns the target of the first label with the given
// name. Duplicate label names are legal; the earliest one in source order
// wins. The second return is false if no label matches.
func (s *Script) ResolveReference(name string) (OperatorIndex, bool) {
	for _, l := range s.labels {
		if l.Name == name {
			return l.Target, true
		}
	}
	return 0, false
}

// SourceRange returns the byte range of the source token that the operator
// at the given index was compiled from. The second return is false if the
// index is past the end of the script. This is a diagnostics aid; evaluation
// never consults it.
func (s *Script) SourceRange(idx OperatorIndex) (Span, bool) {
	if uint64(idx) >= uint64(len(s.spans)) {
		return Span{}, false
	}
	return s.spans[idx], true
}
