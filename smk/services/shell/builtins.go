package shell

import (
	"strings"

	"smkshell/smk/symtab"
)

var builtinCommands = []symtab.Command{
	{Name: "help", Desc: "Show available commands.", Handler: cmdHelp},
	{Name: "history", Desc: "Show submitted lines.", Handler: cmdHistory},
	{Name: "vars", Desc: "List variables and values.", Handler: cmdVars},
	{Name: "get", Desc: "Print a variable: get <name>.", Handler: cmdGet},
	{Name: "set", Desc: "Assign a variable: set <name> <value>.", Handler: cmdSet},
	{Name: "echo", Desc: "Print arguments.", Handler: cmdEcho},
	{Name: "clear", Desc: "Clear the terminal.", Handler: cmdClear},
	{Name: "logout", Desc: "Lock the console until the password is entered.", Handler: cmdLogout},
}

func init() {
	for _, cmd := range builtinCommands {
		symtab.RegisterCommand(cmd.Name, cmd.Desc, cmd.Handler)
	}
}

// AddBuiltins adds the shell's own commands to b, for tables built without
// the process-wide registry.
func AddBuiltins(b *symtab.Builder) error {
	for _, cmd := range builtinCommands {
		if err := b.AddCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdHelp(env symtab.Env, args []string) int {
	tab := env.Symbols()
	if len(args) == 0 {
		for _, cmd := range tab.Commands() {
			env.Printf("%-10s %s\n", cmd.Name, cmd.Desc)
		}
		return 0
	}
	if len(args) != 1 {
		env.Printf("usage: help [command]\n")
		return 1
	}
	cmd, ok := tab.FindCommand(args[0])
	if !ok {
		env.Printf("help: unknown command: %s\n", args[0])
		return 1
	}
	env.Printf("%s: %s\n", cmd.Name, cmd.Desc)
	return 0
}

func cmdHistory(env symtab.Env, _ []string) int {
	s, ok := env.(*Session)
	if !ok {
		return 1
	}
	for i, line := range s.History() {
		env.Printf("%3d  %s\n", i+1, line)
	}
	return 0
}

func cmdVars(env symtab.Env, _ []string) int {
	for _, v := range env.Symbols().Variables() {
		env.Printf("%-12s %-6s %-12s %s\n", v.Name, v.Type, v.Get(), v.Desc)
	}
	return 0
}

func cmdGet(env symtab.Env, args []string) int {
	if len(args) != 1 {
		env.Printf("usage: get <name>\n")
		return 1
	}
	v, ok := env.Symbols().FindVariable(args[0])
	if !ok {
		env.Printf("get: unknown variable: %s\n", args[0])
		return 1
	}
	env.Printf("%s = %s\n", v.Name, v.Get())
	return 0
}

func cmdSet(env symtab.Env, args []string) int {
	if len(args) < 2 {
		env.Printf("usage: set <name> <value>\n")
		return 1
	}
	v, ok := env.Symbols().FindVariable(args[0])
	if !ok {
		env.Printf("set: unknown variable: %s\n", args[0])
		return 1
	}
	if err := v.Set(strings.Join(args[1:], " ")); err != nil {
		env.Printf("set: %v\n", err)
		return 2
	}
	return 0
}

func cmdEcho(env symtab.Env, args []string) int {
	env.Printf("%s\n", strings.Join(args, " "))
	return 0
}

func cmdClear(env symtab.Env, _ []string) int {
	env.Printf("\x1b[2J\x1b[H")
	return 0
}

func cmdLogout(env symtab.Env, _ []string) int {
	s, ok := env.(*Session)
	if !ok || s.auth == nil {
		env.Printf("logout: no password configured\n")
		return 1
	}
	s.Logout()
	return 0
}
