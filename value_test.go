package stackasm

import "testing"

func Test_Value_Reinterpretation(t *testing.T) {
	tests := []struct {
		signed   int32
		unsigned uint32
	}{
		{0, 0},
		{1, 1},
		{-1, 0xffffffff},
		{-2147483648, 0x80000000},
		{2147483647, 0x7fffffff},
	}
	for _, tt := range tests {
		if got := FromI32(tt.signed).U32(); got != tt.unsigned {
			t.Errorf("FromI32(%d).U32() = %d, want %d", tt.signed, got, tt.unsigned)
		}
		if got := FromU32(tt.unsigned).I32(); got != tt.signed {
			t.Errorf("FromU32(%d).I32() = %d, want %d", tt.unsigned, got, tt.signed)
		}
	}
}

func Test_Value_Bool(t *testing.T) {
	if FromI32(0).Bool() {
		t.Errorf("zero is true")
	}
	for _, v := range []int32{1, -1, 42} {
		if !FromI32(v).Bool() {
			t.Errorf("%d is false", v)
		}
	}
}

func Test_Value_String_IsUnsigned(t *testing.T) {
	if got := FromI32(-1).String(); got != "4294967295" {
		t.Errorf("want 4294967295, got %s", got)
	}
}
