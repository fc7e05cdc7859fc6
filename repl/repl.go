// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"symmetrica/internal/errkinds"
	"symmetrica/internal/infix"
	"symmetrica/internal/kernel"
	"symmetrica/internal/simplify"
)

const PROMPT = ">> "

// Start runs a read-simplify-print loop: each line is parsed as an infix
// expression (internal/infix), simplified (internal/simplify), and
// printed back (internal/kernel.Print), all against one persistent
// Store so hash-consing and memoization carry across lines.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	store := kernel.NewStore()
	reporter := errkinds.NewReporter("<repl>")

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		expr, err := infix.Parse(store, line)
		if err != nil {
			fmt.Fprint(out, reporter.Format(parseDiagnostic(line, err)))
			continue
		}

		result, err := simplify.Simplify(store, expr)
		if err != nil {
			fmt.Fprint(out, reporter.Format(evalDiagnostic(line, err)))
			continue
		}

		color.New(color.FgGreen).Fprintf(out, "=> %s\n", store.Print(result))
	}
}

func parseDiagnostic(line string, err error) errkinds.Diagnostic {
	if se, ok := err.(*infix.SyntaxError); ok {
		return errkinds.Diagnostic{
			Kind: errkinds.ParseError, Message: se.Msg, Source: line,
			Position: errkinds.Position{Line: se.Line, Column: se.Column},
		}
	}
	return errkinds.Diagnostic{Kind: errkinds.ParseError, Message: err.Error(), Source: line}
}

func evalDiagnostic(line string, err error) errkinds.Diagnostic {
	kind := errkinds.DomainError
	switch {
	case errors.Is(err, errkinds.NumericOverflow):
		kind = errkinds.NumericOverflow
	case errors.Is(err, errkinds.ResourceExhausted):
		kind = errkinds.ResourceExhausted
	}
	return errkinds.Diagnostic{Kind: kind, Message: err.Error(), Source: line}
}
