package app

import (
	"strconv"
	"time"

	"smkshell/internal/buildinfo"
	"smkshell/smk/symtab"
)

var (
	boardName         = "smk"
	blinkMS    uint32 = 100
	blinkCount int32  = 3
)

func init() {
	symtab.RegisterCommand("led", "Drive the board LED: led on|off|toggle.", cmdLED)
	symtab.RegisterCommand("blink", "Blink the LED: blink [count].", cmdBlink)
	symtab.RegisterCommand("uptime", "Show time since start.", cmdUptime)
	symtab.RegisterCommand("version", "Show build information.", cmdVersion)
	symtab.RegisterCommand("exit", "Stop the console.", cmdExit)
	symtab.RegisterAlias("quit", "exit")

	symtab.RegisterVariable("board", "Board name shown by version.", symtab.VarString, &boardName)
	symtab.RegisterVariable("blink_ms", "LED blink half-period in milliseconds.", symtab.VarUint, &blinkMS)
	symtab.RegisterVariable("blink_count", "Default number of blinks.", symtab.VarInt, &blinkCount)
}

func cmdLED(env symtab.Env, args []string) int {
	sys, ok := systemOf(env)
	if !ok || sys.h.LED() == nil {
		env.Printf("led: no LED\n")
		return 1
	}
	if len(args) != 1 {
		env.Printf("usage: led on|off|toggle\n")
		return 1
	}

	sys.mu.Lock()
	on := sys.ledOn
	sys.mu.Unlock()
	switch args[0] {
	case "on":
		on = true
	case "off":
		on = false
	case "toggle":
		on = !on
	default:
		env.Printf("led: bad state %q\n", args[0])
		return 1
	}
	sys.setLED(on)
	return 0
}

func cmdBlink(env symtab.Env, args []string) int {
	sys, ok := systemOf(env)
	if !ok || sys.h.LED() == nil {
		env.Printf("blink: no LED\n")
		return 1
	}
	n := int(blinkCount)
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			env.Printf("blink: bad count %q\n", args[0])
			return 1
		}
		n = v
	}

	half := time.Duration(blinkMS) * time.Millisecond
	for i := 0; i < n; i++ {
		sys.setLED(true)
		time.Sleep(half)
		sys.setLED(false)
		time.Sleep(half)
	}
	return 0
}

func cmdUptime(env symtab.Env, _ []string) int {
	sys, ok := systemOf(env)
	if !ok {
		return 1
	}
	env.Printf("up %s\n", time.Since(sys.started).Truncate(time.Second))
	return 0
}

func cmdVersion(env symtab.Env, _ []string) int {
	env.Printf("%s %s\n", boardName, buildinfo.Long())
	return 0
}

func cmdExit(env symtab.Env, _ []string) int {
	sys, ok := systemOf(env)
	if !ok {
		return 1
	}
	env.Printf("bye\n")
	sys.requestExit()
	return 0
}

func (s *System) setLED(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledOn = on
	if on {
		s.h.LED().High()
	} else {
		s.h.LED().Low()
	}
}
