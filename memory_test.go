package stackasm

import "testing"

func Test_Memory_ZeroInitialized(t *testing.T) {
	m := newMemory(DefaultMemorySize)
	if m.Len() != DefaultMemorySize {
		t.Fatalf("want %d words, got %d", DefaultMemorySize, m.Len())
	}
	for addr, v := range m.U32s() {
		if v != 0 {
			t.Fatalf("address %d: want 0, got %d", addr, v)
		}
	}
}

func Test_Memory_WriteThenRead(t *testing.T) {
	m := newMemory(4)

	if !m.Write(2, FromU32(7)) {
		t.Fatalf("in-bounds write failed")
	}
	v, ok := m.Read(2)
	if !ok || v.U32() != 7 {
		t.Fatalf("want 7, got %v (ok=%v)", v, ok)
	}

	// No aliasing with other addresses.
	for _, addr := range []uint32{0, 1, 3} {
		if v, _ := m.Read(addr); v != 0 {
			t.Fatalf("address %d changed to %v", addr, v)
		}
	}
}

func Test_Memory_OutOfBounds(t *testing.T) {
	m := newMemory(4)

	if _, ok := m.Read(4); ok {
		t.Fatalf("out-of-bounds read succeeded")
	}
	if m.Write(4, 1) {
		t.Fatalf("out-of-bounds write succeeded")
	}
	if _, ok := m.Read(0xffffffff); ok {
		t.Fatalf("read at the top of the address range succeeded")
	}
}
