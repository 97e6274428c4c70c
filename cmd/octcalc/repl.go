package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"nickandperla.net/octcalc/pkg/octcalc"
)

const (
	historyFile  = ".octcalc_history"
	prompt       = "oct> "
	historyShown = 10
)

const helpText = `Enter an expression in octal, for example:
  7 + 1
  LET x = 10 IN x * x
  DEF square(x) = x * x
  square(5)

Commands:
  :funcs          list defined functions
  :def NAME       show a function definition
  :history [N]    show the last N evaluations (default 10)
  :help           show this help
  :quit           exit (or Ctrl+D)
`

func printBanner(out io.Writer) {
	fmt.Fprintln(out, "octcalc REPL (Ctrl+D to exit, :help for help)")
	fmt.Fprintln(out)
}

func runREPL(calc *octcalc.Calculator, histPath string, stdout, stderr io.Writer) int {
	printBanner(stdout)

	histPath = resolveHistoryPath(histPath)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			// io.EOF on Ctrl+D
			fmt.Fprintln(stdout)
			return 0
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if quit := handleCommand(calc, input, stdout); quit {
				return 0
			}
			continue
		}

		result, err := calc.Evaluate(input)
		if err != nil {
			fmt.Fprint(stderr, formatError(input, err))
			continue
		}
		fmt.Fprintln(stdout, result)
	}
}

// handleCommand runs a REPL command and reports whether the REPL should exit.
func handleCommand(calc *octcalc.Calculator, input string, out io.Writer) bool {
	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q", ":exit":
		return true

	case ":help":
		fmt.Fprint(out, helpText)

	case ":funcs":
		names := calc.Functions()
		if len(names) == 0 {
			fmt.Fprintln(out, "no functions defined")
			break
		}
		for _, name := range names {
			def, _ := calc.Definition(name)
			fmt.Fprintln(out, def)
		}

	case ":def":
		if len(fields) != 2 {
			fmt.Fprintln(out, "usage: :def NAME")
			break
		}
		def, ok := calc.Definition(fields[1])
		if !ok {
			fmt.Fprintf(out, "function %s is not defined\n", fields[1])
			break
		}
		fmt.Fprintln(out, def)

	case ":history":
		limit := historyShown
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				fmt.Fprintln(out, "usage: :history [N]")
				break
			}
			limit = n
		}
		entries, err := calc.History(limit)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			break
		}
		for _, e := range entries {
			if e.Failed() {
				fmt.Fprintf(out, "%4d  %s: %s\n", e.Seq, e.Input, e.Message)
				continue
			}
			fmt.Fprintf(out, "%4d  %s = %s\n", e.Seq, e.Input, e.Result)
		}

	default:
		fmt.Fprintf(out, "unknown command %s. Type :help for commands.\n", fields[0])
	}
	return false
}

// resolveHistoryPath expands a leading ~ and defaults to the home directory.
func resolveHistoryPath(path string) string {
	home, _ := os.UserHomeDir()
	switch {
	case path == "":
		return filepath.Join(home, historyFile)
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	}
	return path
}
