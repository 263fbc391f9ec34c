// Package modcalc is an integer calculator with named, parameterized
// expression templates grouped into modules.
//
// Expressions are tokenized, stored templates referenced from an expression
// are expanded to their values, and the resulting infix expression is
// converted to postfix and evaluated on a stack machine:
//
//    text ─▶ grammar.Tokenize ─▶ evaluator.Expand ─▶ corelang.Convert ─▶ vm.Evaluate
//
// This package holds the pieces shared by all stages: tokens, operators
// and errors, plus a few application-global resources.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package modcalc

import (
	"context"
	"io"
	"os"

	"github.com/knadh/koanf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'modcalc'.
func tracer() tracing.Trace {
	return tracing.Select("modcalc")
}

// Configuration holds global configuration values. We use koanf.
var Configuration *koanf.Koanf

// Historyfile receives the audit trail of issued commands, if not nil.
var Historyfile io.WriteCloser

// SignalContext is a global context for terminating the application by an interrupt
// signal.
var SignalContext context.Context = context.Background()

// Exit exits the application. It gracefully shuts down all resources.
func Exit(errcode int) {
	if Historyfile != nil {
		Historyfile.Close()
	}
	os.Exit(errcode)
}
