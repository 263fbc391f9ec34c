package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/npillmayer/modcalc/evaluator"
)

// RunBatch executes the command lines read from r, printing results to stdout
// and diagnostics to stderr. A failing line is reported with its position as
// name:line and processing continues with the next line.
//
// RunBatch returns the number of failed lines. It stops early if ctx is
// cancelled or r fails; lines are never interrupted half-way.
func RunBatch(ctx context.Context, intp *evaluator.Interpreter, r io.Reader, name string,
	stdout, stderr io.Writer) (int, error) {
	//
	failed := 0
	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		if err := ctx.Err(); err != nil {
			tracer().Infof("batch %s interrupted before line %d", name, lineno)
			return failed, err
		}
		out, err := intp.Execute(scanner.Text())
		if err != nil {
			failed++
			fmt.Fprintf(stderr, "%s:%d: %v\n", name, lineno, err)
			continue
		}
		if out != "" {
			fmt.Fprintln(stdout, out)
		}
	}
	if err := scanner.Err(); err != nil {
		return failed, fmt.Errorf("reading %s: %w", name, err)
	}
	return failed, nil
}
