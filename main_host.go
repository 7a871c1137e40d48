//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"smkshell/app"
	"smkshell/hal"
	"smkshell/hal/window"
	"smkshell/internal/buildinfo"
	"smkshell/smk/services/shell"
)

func main() {
	var cfg app.Config
	var useWindow bool
	var hz int
	flag.BoolVar(&useWindow, "window", false, "Mirror the console in a desktop window.")
	flag.IntVar(&hz, "hz", 200, "Input poll rate without a window.")
	flag.IntVar(&cfg.Shell.LineCapacity, "line", shell.DefaultLineCapacity, "Maximum command line length in bytes.")
	flag.IntVar(&cfg.Shell.HistoryLines, "history", shell.DefaultHistoryLines, "Number of history entries.")
	flag.StringVar(&cfg.Shell.Prompt, "prompt", shell.DefaultPrompt, "Prompt string.")
	flag.StringVar(&cfg.Shell.Password, "password", "", "Require this password before accepting commands.")
	flag.StringVar(&cfg.Shell.PasswordHash, "password-hash", "", "Require a password matching this bcrypt hash (see cmd/mkpasswd).")
	flag.BoolVar(&cfg.Shell.QuotedArgs, "quoted", false, "Split arguments with shell quoting rules.")
	flag.BoolVar(&cfg.Shell.Bell, "bell", false, "Ring the bell on rejected input.")
	flag.Parse()

	cfg.Shell.Banner = "smk shell " + buildinfo.Short() + ", type help"
	cfg.Terminal = useWindow

	if err := run(cfg, useWindow, hz); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg app.Config, useWindow bool, hz int) error {
	hcfg := hal.HostConfig{}
	var kbd *window.Keyboard
	if useWindow {
		kbd = window.NewKeyboard()
		hcfg.Width, hcfg.Height, hcfg.Keyboard = 320, 240, kbd
	}
	h, err := hal.NewHost(hcfg)
	if err != nil {
		return err
	}
	defer h.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sys, err := app.New(h, cfg)
	if err != nil {
		return err
	}
	sys.Start(ctx)

	if useWindow {
		err = window.Run(h.Display().Framebuffer(), kbd, sys.Step, window.Config{
			Title: "smk (" + buildinfo.Short() + ")",
			Scale: 2,
		})
	} else {
		err = hal.RunHeadless(ctx, sys.Step, hal.HeadlessConfig{Hz: hz})
	}
	if errors.Is(err, app.ErrExit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
