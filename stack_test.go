package stackasm

import (
	"reflect"
	"testing"
)

func Test_OperandStack_PushPop(t *testing.T) {
	var s OperandStack
	s.PushI32(3)
	s.PushI32(5)

	v, ok := s.Pop()
	if !ok || v.I32() != 5 {
		t.Fatalf("want 5, got %v (ok=%v)", v, ok)
	}
	v, ok = s.Pop()
	if !ok || v.I32() != 3 {
		t.Fatalf("want 3, got %v (ok=%v)", v, ok)
	}
	if _, ok := s.Pop(); ok {
		t.Fatalf("pop on empty stack succeeded")
	}
}

func Test_OperandStack_Get_IsTopRelative(t *testing.T) {
	var s OperandStack
	s.PushI32(3)
	s.PushI32(5)
	s.PushI32(8)

	for i, want := range []int32{8, 5, 3} {
		v, ok := s.Get(uint32(i))
		if !ok || v.I32() != want {
			t.Fatalf("index %d: want %d, got %v (ok=%v)", i, want, v, ok)
		}
	}
	if _, ok := s.Get(3); ok {
		t.Fatalf("get past the bottom of the stack succeeded")
	}
}

func Test_OperandStack_Get_EmptyStack(t *testing.T) {
	// The empty stack has no top; index 0 must be rejected before the
	// top-relative conversion subtracts anything.
	var s OperandStack
	if _, ok := s.Get(0); ok {
		t.Fatalf("get on empty stack succeeded")
	}
	if s.Remove(0) {
		t.Fatalf("remove on empty stack succeeded")
	}
}

func Test_OperandStack_Remove_PreservesOrder(t *testing.T) {
	var s OperandStack
	s.PushI32(3)
	s.PushI32(5)
	s.PushI32(8)

	if !s.Remove(1) {
		t.Fatalf("remove failed")
	}
	if got, want := s.I32s(), []int32{3, 8}; !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func Test_OperandStack_Slices_AreCopies(t *testing.T) {
	var s OperandStack
	s.PushU32(7)

	u := s.U32s()
	u[0] = 99

	if got, _ := s.Get(0); got.U32() != 7 {
		t.Fatalf("mutating the returned slice changed the stack")
	}
}
