package symtab

import (
	"errors"
	"testing"
)

func TestAddVariable_TypeCheck(t *testing.T) {
	var (
		i int32
		u uint32
		f bool
		s string
		n *int32
	)
	tcs := []struct {
		name string
		v    Variable
		ok   bool
	}{
		{name: "int", v: Variable{Name: "i", Type: VarInt, Ref: &i}, ok: true},
		{name: "uint", v: Variable{Name: "u", Type: VarUint, Ref: &u}, ok: true},
		{name: "bool", v: Variable{Name: "f", Type: VarBool, Ref: &f}, ok: true},
		{name: "string", v: Variable{Name: "s", Type: VarString, Ref: &s}, ok: true},
		{name: "mismatch", v: Variable{Name: "m", Type: VarInt, Ref: &u}, ok: false},
		{name: "value not pointer", v: Variable{Name: "p", Type: VarInt, Ref: int32(1)}, ok: false},
		{name: "nil pointer", v: Variable{Name: "np", Type: VarInt, Ref: n}, ok: false},
		{name: "untyped", v: Variable{Name: "x", Ref: &i}, ok: false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := NewBuilder().AddVariable(tc.v)
			if (err == nil) != tc.ok {
				t.Fatalf("AddVariable(%s) err=%v; want ok=%v", tc.v.Name, err, tc.ok)
			}
			if err != nil && !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("AddVariable(%s) err=%v; want ErrTypeMismatch", tc.v.Name, err)
			}
		})
	}
}

func TestVariable_GetSet(t *testing.T) {
	var (
		level  int32  = -3
		count  uint32 = 7
		on     bool
		layout string = "qwerty"
	)
	tcs := []struct {
		v      Variable
		before string
		in     string
		after  string
	}{
		{v: Variable{Name: "level", Type: VarInt, Ref: &level}, before: "-3", in: "42", after: "42"},
		{v: Variable{Name: "count", Type: VarUint, Ref: &count}, before: "7", in: "0x10", after: "16"},
		{v: Variable{Name: "on", Type: VarBool, Ref: &on}, before: "false", in: "1", after: "true"},
		{v: Variable{Name: "layout", Type: VarString, Ref: &layout}, before: "qwerty", in: "dvorak", after: "dvorak"},
	}
	for _, tc := range tcs {
		t.Run(tc.v.Name, func(t *testing.T) {
			if got := tc.v.Get(); got != tc.before {
				t.Fatalf("Get() = %q; want %q", got, tc.before)
			}
			if err := tc.v.Set(tc.in); err != nil {
				t.Fatalf("Set(%q): %v", tc.in, err)
			}
			if got := tc.v.Get(); got != tc.after {
				t.Fatalf("Get() after Set(%q) = %q; want %q", tc.in, got, tc.after)
			}
		})
	}
	if level != 42 || count != 16 || !on || layout != "dvorak" {
		t.Fatalf("storage not written through: level=%d count=%d on=%v layout=%q", level, count, on, layout)
	}
}

func TestVariable_SetRejectsBadInput(t *testing.T) {
	var (
		level int32 = 5
		count uint32
		on    bool
	)
	tcs := []struct {
		v  Variable
		in string
	}{
		{v: Variable{Name: "level", Type: VarInt, Ref: &level}, in: "high"},
		{v: Variable{Name: "level", Type: VarInt, Ref: &level}, in: "99999999999"},
		{v: Variable{Name: "count", Type: VarUint, Ref: &count}, in: "-1"},
		{v: Variable{Name: "on", Type: VarBool, Ref: &on}, in: "maybe"},
	}
	for _, tc := range tcs {
		if err := tc.v.Set(tc.in); err == nil {
			t.Fatalf("%s.Set(%q) succeeded; want error", tc.v.Name, tc.in)
		}
	}
	if level != 5 {
		t.Fatalf("level=%d after failed Set; want 5", level)
	}
}
