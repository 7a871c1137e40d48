// Package symtab holds the shell's named commands and variables.
//
// Records are collected while packages initialize (RegisterCommand and
// RegisterVariable from init functions) or through an explicit Builder, then
// frozen into a read-only Table. A Table never changes after Build, so lookups
// need no locking.
package symtab

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyName    = errors.New("symtab: empty name")
	ErrDuplicate    = errors.New("symtab: duplicate name")
	ErrNoHandler    = errors.New("symtab: command has no handler")
	ErrTypeMismatch = errors.New("symtab: storage does not match type")
	ErrFrozen       = errors.New("symtab: table already built")
)

// Env is what a handler sees of the session invoking it.
type Env interface {
	Printf(format string, args ...any)
	Symbols() *Table
	// Context returns the value the session owner attached for handlers.
	Context() any
}

// Handler runs a command. args holds the tokens after the command name.
// A non-zero return is reported to the user as a failure status.
type Handler func(env Env, args []string) int

// Command binds a name to a handler.
type Command struct {
	Name    string
	Desc    string
	Handler Handler
}

// Table is a frozen set of commands and variables.
type Table struct {
	cmds   []Command
	cmdIdx map[string]int
	vars   []Variable
	varIdx map[string]int
}

// FindCommand returns the command registered under name (exact, case-sensitive).
func (t *Table) FindCommand(name string) (Command, bool) {
	if t == nil {
		return Command{}, false
	}
	i, ok := t.cmdIdx[name]
	if !ok {
		return Command{}, false
	}
	return t.cmds[i], true
}

// FindVariable returns the variable registered under name (exact, case-sensitive).
func (t *Table) FindVariable(name string) (Variable, bool) {
	if t == nil {
		return Variable{}, false
	}
	i, ok := t.varIdx[name]
	if !ok {
		return Variable{}, false
	}
	return t.vars[i], true
}

// Commands returns all commands sorted by name.
func (t *Table) Commands() []Command {
	if t == nil {
		return nil
	}
	return append([]Command(nil), t.cmds...)
}

// Variables returns all variables sorted by name.
func (t *Table) Variables() []Variable {
	if t == nil {
		return nil
	}
	return append([]Variable(nil), t.vars...)
}

// CommandsWithPrefix returns the sorted names of commands starting with prefix.
func (t *Table) CommandsWithPrefix(prefix string) []string {
	if t == nil || prefix == "" {
		return nil
	}
	var out []string
	for _, c := range t.cmds {
		if strings.HasPrefix(c.Name, prefix) {
			out = append(out, c.Name)
		}
	}
	return out
}

// Builder collects records until Build.
type Builder struct {
	cmds   []Command
	vars   []Variable
	names  map[string]struct{}
	vnames map[string]struct{}
	built  bool
}

func NewBuilder() *Builder {
	return &Builder{
		names:  make(map[string]struct{}),
		vnames: make(map[string]struct{}),
	}
}

// AddCommand registers cmd. Names must be unique among commands.
func (b *Builder) AddCommand(cmd Command) error {
	if b.built {
		return ErrFrozen
	}
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return ErrEmptyName
	}
	if strings.ContainsAny(cmd.Name, " \t") {
		return fmt.Errorf("symtab: command %q: name contains whitespace", cmd.Name)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("%w: %q", ErrNoHandler, cmd.Name)
	}
	if _, ok := b.names[cmd.Name]; ok {
		return fmt.Errorf("%w: command %q", ErrDuplicate, cmd.Name)
	}
	b.names[cmd.Name] = struct{}{}
	b.cmds = append(b.cmds, cmd)
	return nil
}

// AddAlias registers alias as a second name for the already added command target.
func (b *Builder) AddAlias(alias, target string) error {
	for _, c := range b.cmds {
		if c.Name == target {
			return b.AddCommand(Command{Name: alias, Desc: c.Desc, Handler: c.Handler})
		}
	}
	return fmt.Errorf("symtab: alias %q: unknown command %q", alias, target)
}

// AddVariable registers v. Names must be unique among variables.
func (b *Builder) AddVariable(v Variable) error {
	if b.built {
		return ErrFrozen
	}
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return ErrEmptyName
	}
	if err := v.check(); err != nil {
		return err
	}
	if _, ok := b.vnames[v.Name]; ok {
		return fmt.Errorf("%w: variable %q", ErrDuplicate, v.Name)
	}
	b.vnames[v.Name] = struct{}{}
	b.vars = append(b.vars, v)
	return nil
}

// Build freezes the builder and returns the table. Later Add calls fail with ErrFrozen.
func (b *Builder) Build() *Table {
	b.built = true

	t := &Table{
		cmds:   append([]Command(nil), b.cmds...),
		vars:   append([]Variable(nil), b.vars...),
		cmdIdx: make(map[string]int, len(b.cmds)),
		varIdx: make(map[string]int, len(b.vars)),
	}
	sort.Slice(t.cmds, func(i, j int) bool { return t.cmds[i].Name < t.cmds[j].Name })
	sort.Slice(t.vars, func(i, j int) bool { return t.vars[i].Name < t.vars[j].Name })
	for i, c := range t.cmds {
		t.cmdIdx[c.Name] = i
	}
	for i, v := range t.vars {
		t.varIdx[v.Name] = i
	}
	return t
}
