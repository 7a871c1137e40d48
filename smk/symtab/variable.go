package symtab

import (
	"fmt"
	"strconv"
)

// VarType tags the storage behind a Variable.
type VarType uint8

const (
	VarInt    VarType = iota + 1 // *int32
	VarUint                      // *uint32
	VarBool                      // *bool
	VarString                    // *string
)

func (t VarType) String() string {
	switch t {
	case VarInt:
		return "int"
	case VarUint:
		return "uint"
	case VarBool:
		return "bool"
	case VarString:
		return "string"
	default:
		return "unknown"
	}
}

// Variable exposes externally owned storage to the shell. The shell never
// allocates or frees Ref; it only reads and writes through it.
type Variable struct {
	Name string
	Desc string
	Type VarType
	Ref  any
}

func (v Variable) check() error {
	ok := false
	switch v.Type {
	case VarInt:
		p, isPtr := v.Ref.(*int32)
		ok = isPtr && p != nil
	case VarUint:
		p, isPtr := v.Ref.(*uint32)
		ok = isPtr && p != nil
	case VarBool:
		p, isPtr := v.Ref.(*bool)
		ok = isPtr && p != nil
	case VarString:
		p, isPtr := v.Ref.(*string)
		ok = isPtr && p != nil
	}
	if !ok {
		return fmt.Errorf("%w: %q is %s, storage is %T", ErrTypeMismatch, v.Name, v.Type, v.Ref)
	}
	return nil
}

// Get formats the current value.
func (v Variable) Get() string {
	switch p := v.Ref.(type) {
	case *int32:
		return strconv.FormatInt(int64(*p), 10)
	case *uint32:
		return strconv.FormatUint(uint64(*p), 10)
	case *bool:
		return strconv.FormatBool(*p)
	case *string:
		return *p
	default:
		return ""
	}
}

// Set parses s according to the variable type and stores it.
func (v Variable) Set(s string) error {
	switch p := v.Ref.(type) {
	case *int32:
		n, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			return fmt.Errorf("symtab: %s: %w", v.Name, err)
		}
		*p = int32(n)
	case *uint32:
		n, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return fmt.Errorf("symtab: %s: %w", v.Name, err)
		}
		*p = uint32(n)
	case *bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("symtab: %s: %w", v.Name, err)
		}
		*p = b
	case *string:
		*p = s
	default:
		return fmt.Errorf("%w: %q", ErrTypeMismatch, v.Name)
	}
	return nil
}
