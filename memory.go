package stackasm

// DefaultMemorySize is the number of words in a fresh Eval's memory.
const DefaultMemorySize = 1024

// Memory is a linear memory, freely addressable per word through the `read`
// and `write` operators. Its length is fixed at construction; it never grows
// or shrinks. Like the operand stack, it is a communication channel between
// script and host.
type Memory struct {
	words []Value
}

func newMemory(size int) *Memory {
	return &Memory{words: make([]Value, size)}
}

// Read returns the word at the given address. The second return is false if
// the address is out of bounds.
func (m *Memory) Read(addr uint32) (Value, bool) {
	if uint64(addr) >= uint64(len(m.words)) {
		return 0, false
	}
	return m.words[addr], true
}

// Write stores a word at the given address, in place. It reports whether the
// address was in bounds.
func (m *Memory) Write(addr uint32, v Value) bool {
	if uint64(addr) >= uint64(len(m.words)) {
		return false
	}
	m.words[addr] = v
	return true
}

// Len returns the number of words in the memory.
func (m *Memory) Len() int { return len(m.words) }

// U32s returns a copy of the memory contents as unsigned values.
func (m *Memory) U32s() []uint32 {
	out := make([]uint32, len(m.words))
	for i, v := range m.words {
		out[i] = v.U32()
	}
	return out
}
