package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"nickandperla.net/octcalc/pkg/octcalc"
)

// runBatch evaluates each line of r in one session. Blank lines and lines
// starting with '#' are skipped. It returns 1 if any line failed.
func runBatch(calc *octcalc.Calculator, r io.Reader, stdout, stderr io.Writer) int {
	status := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result, err := calc.Evaluate(line)
		if err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", line, err)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "%s = %s\n", line, result)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}
	return status
}
