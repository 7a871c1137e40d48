//go:build tinygo

package main

import (
	"context"

	"smkshell/app"
	"smkshell/hal"
	"smkshell/internal/buildinfo"
)

func main() {
	h := hal.New()
	cfg := app.Config{}
	cfg.Shell.Banner = "smk shell " + buildinfo.Short()
	if err := app.Run(context.Background(), h, cfg); err != nil {
		h.Logger().WriteLineString("smk: " + err.Error())
	}
	select {}
}
