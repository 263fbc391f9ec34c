/*
Package cli implements the modcalc command line interface.

modcalc runs command lines either interactively in a terminal REPL or in
batch mode, reading scripts line by line:

   modcalc                  # REPL if stdin is a terminal, else read stdin
   modcalc a.mc b.mc        # run scripts, then exit
   modcalc -i a.mc          # run a script, then continue in the REPL
   modcalc - < a.mc         # read commands from stdin

Configuration is taken from (lowest priority first) built-in defaults, a YAML
configuration file and command line flags.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'modcalc.cli'
func tracer() tracing.Trace {
	return tracing.Select("modcalc.cli")
}
