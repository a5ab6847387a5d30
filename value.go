package stackasm

import "strconv"

// Value is the language's only datum: an untyped 32-bit word. It carries no
// intrinsic sign; depending on the situation it may be interpreted as signed
// or unsigned. Both reinterpretations are bit-identical and never fail.
type Value uint32

// FromI32 builds a Value from the bits of a signed 32-bit integer.
func FromI32(v int32) Value { return Value(uint32(v)) }

// FromU32 builds a Value from an unsigned 32-bit integer.
func FromU32(v uint32) Value { return Value(v) }

// I32 interprets the bits of the value as a signed (two's complement) integer.
func (v Value) I32() int32 { return int32(v) }

// U32 interprets the bits of the value as an unsigned integer.
func (v Value) U32() uint32 { return uint32(v) }

// Index converts the value to a native index. Go guarantees int is at least
// 32 bits wide, so this is total.
func (v Value) Index() int { return int(uint32(v)) }

// Bool interprets the value as a condition: any nonzero word is true.
func (v Value) Bool() bool { return v != 0 }

func (v Value) String() string {
	return strconv.FormatUint(uint64(v), 10)
}
