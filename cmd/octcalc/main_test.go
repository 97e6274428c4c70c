package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nickandperla.net/octcalc/pkg/octcalc"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestEvalFlag(t *testing.T) {
	code, out, _ := runCLI(t, "", "-e", "7 + 1")
	if code != 0 || out != "10\n" {
		t.Errorf("got code %d, output %q", code, out)
	}

	code, out, errOut := runCLI(t, "", "-e", "5 +")
	if code != 1 || out != "" {
		t.Errorf("expected failure, got code %d, output %q", code, out)
	}
	if !strings.Contains(errOut, "   ^") {
		t.Errorf("expected caret in error output, got %q", errOut)
	}
}

func TestEvalFlagOptions(t *testing.T) {
	src := "DEF fact(n) = IF n <= 1 THEN 1 ELSE n * fact(n - 1); fact(5)"

	code, out, errOut := runCLI(t, "", "-lazy", "-e", src)
	if code != 0 || out != "170\n" {
		t.Errorf("lazy: got code %d, output %q, stderr %q", code, out, errOut)
	}

	code, _, errOut = runCLI(t, "", "-max-depth", "5", "-e", src)
	if code != 1 || !strings.Contains(errOut, "recursion") {
		t.Errorf("eager: got code %d, stderr %q", code, errOut)
	}

	code, out, _ = runCLI(t, "", "-lenient", "-e", "1 + 1 $")
	if code != 0 || out != "2\n" {
		t.Errorf("lenient: got code %d, output %q", code, out)
	}
}

func TestPipedInput(t *testing.T) {
	input := `# comment
DEF square(x) = x * x

square(5)
1 / 0
square(3) + 1
`
	code, out, _ := runCLI(t, input)
	if code != 1 {
		t.Errorf("expected exit 1 after a failed line, got %d", code)
	}
	want := "DEF square(x) = x * x = 0\n" +
		"square(5) = 31\n" +
		"1 / 0: division by zero is not allowed\n" +
		"square(3) + 1 = 12\n"
	if out != want {
		t.Errorf("got output:\n%s\nwant:\n%s", out, want)
	}
}

func TestPipedInputSuccess(t *testing.T) {
	code, out, _ := runCLI(t, "1 + 1\n2 * 4\n")
	if code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
	if out != "1 + 1 = 2\n2 * 4 = 10\n" {
		t.Errorf("got output %q", out)
	}
}

func TestFileFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.oct")
	if err := os.WriteFile(path, []byte("DEF inc(x) = x + 1\ninc(7)\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	db := filepath.Join(dir, "t.db")
	code, out, _ := runCLI(t, "", "-f", path, "-db", db)
	if code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
	if !strings.HasSuffix(out, "inc(7) = 10\n") {
		t.Errorf("got output %q", out)
	}

	calc, err := octcalc.New(octcalc.WithSQLiteTranscript(db))
	if err != nil {
		t.Fatalf("reopen transcript: %v", err)
	}
	defer calc.Close()
	entries, err := calc.History(0)
	if err != nil || len(entries) != 2 {
		t.Errorf("expected 2 transcript entries, got %d, %v", len(entries), err)
	}

	code, _, errOut := runCLI(t, "", "-f", filepath.Join(dir, "missing.oct"))
	if code != 1 || !strings.Contains(errOut, "Error") {
		t.Errorf("missing file: got code %d, stderr %q", code, errOut)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "octcalc.yaml")
	if err := os.WriteFile(path, []byte("branches: lazy\nmax_depth: 50\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src := "DEF f(n) = IF n == 0 THEN 0 ELSE f(n - 1); f(10)"
	code, out, errOut := runCLI(t, "", "-config", path, "-e", src)
	if code != 0 || out != "0\n" {
		t.Errorf("got code %d, output %q, stderr %q", code, out, errOut)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("depth: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, _, errOut = runCLI(t, "", "-config", bad, "-e", "1")
	if code != 1 || !strings.Contains(errOut, "depth") {
		t.Errorf("bad config: got code %d, stderr %q", code, errOut)
	}

	code, _, errOut = runCLI(t, "", "-max-depth", "-3", "-e", "1")
	if code != 1 || !strings.Contains(errOut, "max_depth") {
		t.Errorf("bad flag: got code %d, stderr %q", code, errOut)
	}
}

func TestVerboseLogging(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-v", "-e", "DEF sq(x) = x * x; sq(2)")
	if code != 0 {
		t.Fatalf("got code %d", code)
	}
	for _, want := range []string{"level=DEBUG", "define function", "function=sq"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("expected %q in log output, got %q", want, errOut)
		}
	}

	_, _, errOut = runCLI(t, "", "-e", "1 + 1")
	if errOut != "" {
		t.Errorf("expected no log output by default, got %q", errOut)
	}
}

func TestUnknownFlag(t *testing.T) {
	code, _, _ := runCLI(t, "", "-nope")
	if code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
}
