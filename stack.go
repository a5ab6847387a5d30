package stackasm

// OperandStack is the implicit LIFO value store that operators read their
// inputs from and write their outputs to. Aside from that, it is one of the
// primary communication channels between script and host: hosts may inspect
// it at any time, and mutate it while handling a Yield effect.
type OperandStack struct {
	values []Value
}

// Push places a value on top of the stack.
func (s *OperandStack) Push(v Value) {
	s.values = append(s.values, v)
}

// PushI32 pushes the bits of a signed 32-bit integer.
func (s *OperandStack) PushI32(v int32) { s.Push(FromI32(v)) }

// PushU32 pushes an unsigned 32-bit integer.
func (s *OperandStack) PushU32(v uint32) { s.Push(FromU32(v)) }

// PushBool pushes 1 for true and 0 for false.
func (s *OperandStack) PushBool(v bool) {
	if v {
		s.Push(1)
	} else {
		s.Push(0)
	}
}

// Pop removes and returns the value on top of the stack. The second return
// is false if the stack is empty.
func (s *OperandStack) Pop() (Value, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, true
}

// Get returns the value at the given index from the top, where index 0 is
// the top element. The second return is false if the index does not refer
// to a value on the stack.
func (s *OperandStack) Get(indexFromTop uint32) (Value, bool) {
	i, ok := s.fromTop(indexFromTop)
	if !ok {
		return 0, false
	}
	return s.values[i], true
}

// Remove deletes the value at the given index from the top, preserving the
// relative order of the remaining values. It reports whether the index
// referred to a value on the stack.
func (s *OperandStack) Remove(indexFromTop uint32) bool {
	i, ok := s.fromTop(indexFromTop)
	if !ok {
		return false
	}
	s.values = append(s.values[:i], s.values[i+1:]...)
	return true
}

// Len returns the number of values on the stack.
func (s *OperandStack) Len() int { return len(s.values) }

// I32s returns a copy of the stack contents, bottom first, as signed values.
func (s *OperandStack) I32s() []int32 {
	out := make([]int32, len(s.values))
	for i, v := range s.values {
		out[i] = v.I32()
	}
	return out
}

// U32s returns a copy of the stack contents, bottom first, as unsigned values.
func (s *OperandStack) U32s() []uint32 {
	out := make([]uint32, len(s.values))
	for i, v := range s.values {
		out[i] = v.U32()
	}
	return out
}

// fromTop converts a top-relative index into a position in values. The empty
// stack has no valid top, so that case must be detected before subtracting;
// otherwise the computation would wrap around.
func (s *OperandStack) fromTop(indexFromTop uint32) (int, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	if uint64(indexFromTop) >= uint64(len(s.values)) {
		return 0, false
	}
	return len(s.values) - 1 - int(indexFromTop), true
}
