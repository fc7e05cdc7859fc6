// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"symmetrica/internal/diff"
	"symmetrica/internal/errkinds"
	"symmetrica/internal/infix"
	"symmetrica/internal/integrate"
	"symmetrica/internal/kernel"
	"symmetrica/internal/sexpr"
	"symmetrica/internal/simplify"
	"symmetrica/repl"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: symmetrica-cli <file>")
		fmt.Println("       symmetrica-cli -diff <var> <file>")
		fmt.Println("       symmetrica-cli -integrate <var> <file>")
		fmt.Println("       symmetrica-cli -repl")
		os.Exit(1)
	}

	if os.Args[1] == "-repl" {
		repl.Start(os.Stdin, os.Stdout)
		return
	}

	op, varName, path := parseArgs(os.Args[1:])

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("Failed to read file: %s", err)
		os.Exit(1)
	}

	store := kernel.NewStore()
	reporter := errkinds.NewReporter(path)
	lines := strings.Split(string(source), "\n")
	failures := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		result, ok, err := process(store, op, varName, trimmed)
		if err != nil {
			failures++
			fmt.Print(reporter.Format(lineDiagnostic(i+1, trimmed, err)))
			continue
		}
		if !ok {
			color.Yellow("line %d: %s -> no closed form", i+1, trimmed)
			continue
		}
		color.Green("line %d: %s -> %s", i+1, trimmed, store.Print(result))
	}

	if failures > 0 {
		color.Red("❌ %d of %d lines failed in %s", failures, len(lines), path)
		os.Exit(1)
	}
	color.Green("✅ Successfully processed %s", path)
}

type operation int

const (
	opSimplify operation = iota
	opDiff
	opIntegrate
)

func parseArgs(args []string) (op operation, varName, path string) {
	switch {
	case len(args) >= 3 && args[0] == "-diff":
		return opDiff, args[1], args[2]
	case len(args) >= 3 && args[0] == "-integrate":
		return opIntegrate, args[1], args[2]
	default:
		return opSimplify, "x", args[0]
	}
}

// process parses one line (S-expression if it starts with "(", infix
// otherwise) and applies the selected operation. When err is nil, ok is
// false only for "no closed form" from the integrator.
func process(store *kernel.Store, op operation, varName, line string) (kernel.ExprId, bool, error) {
	var expr kernel.ExprId
	var err error
	if strings.HasPrefix(line, "(") {
		expr, err = sexpr.Parse(store, line)
	} else {
		expr, err = infix.Parse(store, line)
	}
	if err != nil {
		return kernel.Invalid, false, err
	}

	switch op {
	case opDiff:
		result, err := diff.Diff(store, expr, varName)
		return result, true, err
	case opIntegrate:
		result, ok, err := integrate.Integrate(store, expr, varName)
		return result, ok, err
	default:
		result, err := simplify.Simplify(store, expr)
		return result, true, err
	}
}

// lineDiagnostic builds a Diagnostic whose Source is just the offending
// line (not the whole file), so Position.Line is always 1 within it; the
// line's position within the file is folded into the message instead.
func lineDiagnostic(lineNo int, source string, err error) errkinds.Diagnostic {
	prefixed := fmt.Sprintf("line %d: %s", lineNo, err.Error())
	if se, ok := err.(*infix.SyntaxError); ok {
		return errkinds.Diagnostic{
			Kind: errkinds.ParseError, Message: fmt.Sprintf("line %d: %s", lineNo, se.Msg), Source: source,
			Position: errkinds.Position{Line: 1, Column: se.Column},
		}
	}
	if se, ok := err.(*sexpr.SyntaxError); ok {
		return errkinds.Diagnostic{
			Kind: errkinds.ParseError, Message: fmt.Sprintf("line %d: %s", lineNo, se.Msg), Source: source,
			Position: errkinds.Position{Line: 1, Column: se.Column},
		}
	}
	return errkinds.Diagnostic{Kind: errkinds.DomainError, Message: prefixed, Source: source, Position: errkinds.Position{Line: 1, Column: 1}}
}
