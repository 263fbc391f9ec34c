// Package termui provides objects and methods for interactive UI in terminal windows.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
//
package termui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/modcalc"
	"github.com/npillmayer/schuko/tracing"
)

// trace traces with key 'modcalc.cli'.
func trace() tracing.Trace {
	return tracing.Select("modcalc.cli")
}

// Formatter writes items produced by an interpreter to a terminal.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

// DefaultFormatter formats strings, errors and tables.
type DefaultFormatter struct{}

// Format writes item to w. Multi-line strings are written line by line, each
// line marked. Errors are colored.
func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	switch t := item.(type) {
	case string:
		for _, line := range strings.Split(t, "\n") {
			if _, err := io.WriteString(w, "▶ "+line+"\n"); err != nil {
				return false, err
			}
		}
		return true, nil
	case error:
		label := "error"
		if errors.Is(t, modcalc.ErrInvalidCommand) {
			label = "unknown command"
		}
		_, err := io.WriteString(w, prtxt.FgRed.Sprint("✖ "+label+": ")+t.Error()+"\n")
		return err == nil, err
	case table.Writer:
		if t == nil {
			w.Write([]byte("▶ (empty table)\n"))
		} else {
			w.Write([]byte(t.Render()))
			w.Write([]byte{'\n'})
		}
		return true, nil
	default:
		w.Write([]byte("▶ "))
		w.Write([]byte(fmt.Sprintf("object of type %T\n", t)))
		return true, nil
	}
}
