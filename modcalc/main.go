// Command modcalc is an integer calculator with modules of expression templates.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/npillmayer/modcalc"
	"github.com/npillmayer/modcalc/modcalc/cli"
)

func main() {
	var stop context.CancelFunc
	modcalc.SignalContext, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// CLI commands will call modcalc.Exit() to terminate the application.
	cli.Execute()
}
