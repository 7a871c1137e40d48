package symtab

import (
	"fmt"
	"sync"
)

var (
	defaultMu      sync.Mutex
	defaultBuilder = NewBuilder()
	defaultTable   *Table
)

// RegisterCommand adds a command to the process-wide table. It is meant to be
// called from init functions and panics on an invalid or duplicate name, or
// once Default has been called.
func RegisterCommand(name, desc string, h Handler) {
	register(func(b *Builder) error {
		return b.AddCommand(Command{Name: name, Desc: desc, Handler: h})
	})
}

// RegisterAlias adds alias for an already registered command.
func RegisterAlias(alias, target string) {
	register(func(b *Builder) error { return b.AddAlias(alias, target) })
}

// RegisterVariable adds a variable to the process-wide table. ref must be a
// non-nil pointer matching typ. Same panic rules as RegisterCommand.
func RegisterVariable(name, desc string, typ VarType, ref any) {
	register(func(b *Builder) error {
		return b.AddVariable(Variable{Name: name, Desc: desc, Type: typ, Ref: ref})
	})
}

func register(add func(b *Builder) error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if err := add(defaultBuilder); err != nil {
		panic(fmt.Sprintf("symtab register: %v", err))
	}
}

// Default freezes and returns the process-wide table. The first call builds it;
// later calls return the same table.
func Default() *Table {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultTable == nil {
		defaultTable = defaultBuilder.Build()
	}
	return defaultTable
}
