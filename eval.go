package stackasm

import (
	"math"
	"math/bits"
)

// Eval is the ongoing evaluation of a script. It owns an operand stack and a
// linear memory, holds a cursor into the script's operator sequence, a call
// stack, and the active effect, if one has triggered.
//
// Evaluation is single-threaded and fully synchronous. An Eval must be
// confined to one goroutine, or externally serialized.
type Eval struct {
	script *Script

	next      OperatorIndex
	callStack []OperatorIndex
	effect    Effect

	stack  *OperandStack
	memory *Memory
}

// NewEval creates an evaluation bound to the given script, with an empty
// operand stack and a zero-initialized memory of DefaultMemorySize words.
func NewEval(script *Script) *Eval {
	return &Eval{
		script: script,
		stack:  &OperandStack{},
		memory: newMemory(DefaultMemorySize),
	}
}

// OperandStack returns the evaluation's operand stack. Hosts may inspect it
// at any time; well-behaving hosts restrict mutation to Yield handling.
func (e *Eval) OperandStack() *OperandStack { return e.stack }

// Memory returns the evaluation's linear memory. Hosts may inspect it at any
// time; well-behaving hosts restrict mutation to Yield handling.
func (e *Eval) Memory() *Memory { return e.memory }

// Effect returns the active effect. The second return is false if no effect
// has triggered, meaning the evaluation is eligible to make progress.
func (e *Eval) Effect() (Effect, bool) {
	return e.effect, e.effect != EffectNone
}

// NextOperator returns the cursor: the index of the operator that will be
// evaluated next. While an error effect is active, the cursor points one
// past the operator that triggered it.
func (e *Eval) NextOperator() OperatorIndex { return e.next }

// ClearEffect removes the active effect, making the evaluation eligible to
// make progress again. Required after Yield for the script to continue;
// clearing any other effect forces continuation and should be limited to
// non-standard, experimental hosts.
func (e *Eval) ClearEffect() { e.effect = EffectNone }

// HandleEffect runs fn against the operand stack and memory, then clears the
// active effect, as one operation. It reports whether there was an effect to
// handle; fn is not called otherwise. A nil fn just clears.
//
// This is the intended way to service a Yield: the host performs whatever
// exchange of values the script expects, and evaluation resumes at the
// operator after the `yield`.
func (e *Eval) HandleEffect(fn func(*OperandStack, *Memory)) bool {
	if e.effect == EffectNone {
		return false
	}
	if fn != nil {
		fn(e.stack, e.memory)
	}
	e.effect = EffectNone
	return true
}

// Run advances the evaluation until an effect triggers, and returns that
// effect. If an effect is already active, it returns immediately.
func (e *Eval) Run() Effect {
	for e.Step() {
	}
	return e.effect
}

// Step advances the evaluation by one operator. If an effect is active, it
// does nothing and returns false; otherwise it evaluates the operator under
// the cursor, stores any effect that triggers, and returns true.
func (e *Eval) Step() bool {
	if e.effect != EffectNone {
		return false
	}
	if eff := e.evalNext(); eff != EffectNone {
		e.effect = eff
	}
	return true
}

func (e *Eval) evalNext() Effect {
	op, ok := e.script.Operator(e.next)
	if !ok {
		return OutOfOperators
	}
	// The cursor advances before the operator's semantics apply. Jumps and
	// calls overwrite it; everything else falls through to the following
	// operator, including resumption after a cleared effect.
	e.next++

	switch op.Kind {
	case OpInteger:
		e.stack.Push(op.Value)
		return EffectNone
	case OpReference:
		target, ok := e.script.ResolveReference(op.Name)
		if !ok {
			return InvalidReference
		}
		e.stack.PushU32(uint32(target))
		return EffectNone
	default:
		fn, ok := builtins[op.Name]
		if !ok {
			return UnknownIdentifier
		}
		return fn(e)
	}
}

// pop2 pops the second operand first, so that for `a b OP`, b comes off
// before a, preserving the left-to-right source meaning `a OP b`.
func (e *Eval) pop2() (a, b Value, eff Effect) {
	b, ok := e.stack.Pop()
	if !ok {
		return 0, 0, OperandStackUnderflow
	}
	a, ok = e.stack.Pop()
	if !ok {
		return 0, 0, OperandStackUnderflow
	}
	return a, b, EffectNone
}

func (e *Eval) binI32(f func(a, b int32) int32) Effect {
	a, b, eff := e.pop2()
	if eff != EffectNone {
		return eff
	}
	e.stack.PushI32(f(a.I32(), b.I32()))
	return EffectNone
}

func (e *Eval) cmpI32(f func(a, b int32) bool) Effect {
	a, b, eff := e.pop2()
	if eff != EffectNone {
		return eff
	}
	e.stack.PushBool(f(a.I32(), b.I32()))
	return EffectNone
}

func (e *Eval) unaryU32(f func(a uint32) uint32) Effect {
	a, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	e.stack.PushU32(f(a.U32()))
	return EffectNone
}

// builtins maps each mnemonic of the builtin vocabulary to its handler. Any
// identifier without an entry triggers UnknownIdentifier at evaluation time;
// compilation does not consult this table.
var builtins = map[string]func(*Eval) Effect{
	"*": func(e *Eval) Effect {
		return e.binI32(func(a, b int32) int32 { return a * b })
	},
	"+": func(e *Eval) Effect {
		return e.binI32(func(a, b int32) int32 { return a + b })
	},
	"-": func(e *Eval) Effect {
		return e.binI32(func(a, b int32) int32 { return a - b })
	},
	"/": opDivide,

	"<": func(e *Eval) Effect {
		return e.cmpI32(func(a, b int32) bool { return a < b })
	},
	"<=": func(e *Eval) Effect {
		return e.cmpI32(func(a, b int32) bool { return a <= b })
	},
	"=": func(e *Eval) Effect {
		// Equality is sign-independent; the bits either match or they don't.
		a, b, eff := e.pop2()
		if eff != EffectNone {
			return eff
		}
		e.stack.PushBool(a == b)
		return EffectNone
	},
	">": func(e *Eval) Effect {
		return e.cmpI32(func(a, b int32) bool { return a > b })
	},
	">=": func(e *Eval) Effect {
		return e.cmpI32(func(a, b int32) bool { return a >= b })
	},

	"and": func(e *Eval) Effect {
		return e.binI32(func(a, b int32) int32 { return a & b })
	},
	"or": func(e *Eval) Effect {
		return e.binI32(func(a, b int32) int32 { return a | b })
	},
	"xor": func(e *Eval) Effect {
		return e.binI32(func(a, b int32) int32 { return a ^ b })
	},

	"count_ones": func(e *Eval) Effect {
		return e.unaryU32(func(a uint32) uint32 { return uint32(bits.OnesCount32(a)) })
	},
	"leading_zeros": func(e *Eval) Effect {
		return e.unaryU32(func(a uint32) uint32 { return uint32(bits.LeadingZeros32(a)) })
	},
	"trailing_zeros": func(e *Eval) Effect {
		return e.unaryU32(func(a uint32) uint32 { return uint32(bits.TrailingZeros32(a)) })
	},
	"rotate_left": func(e *Eval) Effect {
		a, n, eff := e.pop2()
		if eff != EffectNone {
			return eff
		}
		e.stack.PushU32(bits.RotateLeft32(a.U32(), int(n.U32()%32)))
		return EffectNone
	},
	"rotate_right": func(e *Eval) Effect {
		a, n, eff := e.pop2()
		if eff != EffectNone {
			return eff
		}
		e.stack.PushU32(bits.RotateLeft32(a.U32(), -int(n.U32()%32)))
		return EffectNone
	},
	"shift_left": func(e *Eval) Effect {
		// Shift amounts are taken mod 32, like rotation counts.
		return e.binI32(func(a, n int32) int32 { return a << (uint32(n) % 32) })
	},
	"shift_right": func(e *Eval) Effect {
		// Arithmetic shift: the sign bit fills in from the left.
		return e.binI32(func(a, n int32) int32 { return a >> (uint32(n) % 32) })
	},

	"copy":        opCopy,
	"drop":        opDrop,
	"jump":        opJump,
	"jump_if":     opJumpIf,
	"call":        opCall,
	"call_either": opCallEither,
	"return":      opReturn,
	"assert":      opAssert,
	"yield":       func(*Eval) Effect { return Yield },
	"read":        opRead,
	"write":       opWrite,
}

func opDivide(e *Eval) Effect {
	a, b, eff := e.pop2()
	if eff != EffectNone {
		return eff
	}
	divisor := b.I32()
	dividend := a.I32()
	if divisor == 0 {
		return DivisionByZero
	}
	if dividend == math.MinInt32 && divisor == -1 {
		return IntegerOverflow
	}
	e.stack.PushI32(dividend / divisor)
	e.stack.PushI32(dividend % divisor)
	return EffectNone
}

func opCopy(e *Eval) Effect {
	idx, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	v, ok := e.stack.Get(idx.U32())
	if !ok {
		return InvalidOperandStackIndex
	}
	e.stack.Push(v)
	return EffectNone
}

func opDrop(e *Eval) Effect {
	idx, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	if !e.stack.Remove(idx.U32()) {
		return InvalidOperandStackIndex
	}
	return EffectNone
}

func opJump(e *Eval) Effect {
	target, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	e.next = OperatorIndex(target.U32())
	return EffectNone
}

func opJumpIf(e *Eval) Effect {
	target, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	condition, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	if condition.Bool() {
		e.next = OperatorIndex(target.U32())
	}
	return EffectNone
}

func opCall(e *Eval) Effect {
	// The cursor has already advanced past the `call` operator, so it is
	// the return address. It is pushed before the target is popped, and
	// stays pushed even if that pop underflows; pops and pushes are never
	// rolled back.
	e.callStack = append(e.callStack, e.next)

	target, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	e.next = OperatorIndex(target.U32())
	return EffectNone
}

func opCallEither(e *Eval) Effect {
	e.callStack = append(e.callStack, e.next)

	elseTarget, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	thenTarget, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	condition, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	if condition.Bool() {
		e.next = OperatorIndex(thenTarget.U32())
	} else {
		e.next = OperatorIndex(elseTarget.U32())
	}
	return EffectNone
}

func opReturn(e *Eval) Effect {
	if len(e.callStack) == 0 {
		return Return
	}
	e.next = e.callStack[len(e.callStack)-1]
	e.callStack = e.callStack[:len(e.callStack)-1]
	return EffectNone
}

func opAssert(e *Eval) Effect {
	condition, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	if !condition.Bool() {
		return AssertionFailed
	}
	return EffectNone
}

func opRead(e *Eval) Effect {
	addr, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	v, ok := e.memory.Read(addr.U32())
	if !ok {
		return InvalidAddress
	}
	e.stack.Push(v)
	return EffectNone
}

func opWrite(e *Eval) Effect {
	v, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	addr, ok := e.stack.Pop()
	if !ok {
		return OperandStackUnderflow
	}
	if !e.memory.Write(addr.U32(), v) {
		return InvalidAddress
	}
	return EffectNone
}
