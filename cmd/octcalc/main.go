// Command octcalc is the octal calculator CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
	"nickandperla.net/octcalc/pkg/octcalc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("octcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML config file")
		evalStr    = fs.String("e", "", "Evaluate expression and print the result")
		file       = fs.String("f", "", "Evaluate each line of a file")
		dbPath     = fs.String("db", "", "SQLite transcript path (default: in memory)")
		maxDepth   = fs.Int("max-depth", 0, "Maximum function call nesting")
		lazy       = fs.Bool("lazy", false, "Evaluate only the selected IF branch")
		lenient    = fs.Bool("lenient", false, "Skip unrecognized characters")
		verbose    = fs.Bool("v", false, "Log evaluation trace to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := octcalc.DefaultConfig()
	if *configPath != "" {
		loaded, err := octcalc.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// Flags override the config file.
	if *maxDepth != 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *lazy {
		cfg.Branches = "lazy"
	}
	if *lenient {
		cfg.Lexing = "lenient"
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if *dbPath != "" {
		cfg.Transcript = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	interactive := *evalStr == "" && *file == "" && isTerminal(stdin)

	opts := []octcalc.Option{
		octcalc.WithConfig(cfg),
		octcalc.WithLogger(logger),
	}
	if interactive && cfg.Transcript == "" {
		opts = append(opts, octcalc.WithMemoryTranscript())
	}

	calc, err := octcalc.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer calc.Close()

	switch {
	case *evalStr != "":
		result, err := calc.Evaluate(*evalStr)
		if err != nil {
			fmt.Fprint(stderr, formatError(*evalStr, err))
			return 1
		}
		fmt.Fprintln(stdout, result)
		return 0

	case *file != "":
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		return runBatch(calc, f, stdout, stderr)

	case !interactive:
		return runBatch(calc, stdin, stdout, stderr)
	}

	return runREPL(calc, cfg.History, stdout, stderr)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
