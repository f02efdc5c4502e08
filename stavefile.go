//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/autosarlint"
	mainPkg = "./cmd/autosarlint"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"fmt":  Lint.Fmt,
	"prof": Bench.Profile,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles autosarlint with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary + " is up to date")
		return nil
	}
	fmt.Println("Building autosarlint...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check runs format, lint and test in order.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build, coverage and profiling output.
func Clean() error {
	for _, path := range []string{"bin", "bench", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs autosarlint to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic", "./...")
}

// Catalog runs the rule detectors, the directive extractor and the
// suppression resolver tests verbosely.
func (Test) Catalog() error {
	return gotestsum("standard-verbose",
		"./pkg/lint/rules/...", "./pkg/directive/...", "./pkg/suppress/...")
}

// Fuzz runs every fuzz target for $FUZZTIME (default 20s) each.
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "20s")
	targets := []struct{ pkg, name string }{
		{"./pkg/fix", "FuzzApplyEdits"},
		{"./pkg/fix", "FuzzGenerateDiff"},
		{"./pkg/fsutil", "FuzzLatin1RoundTrip"},
	}
	for _, t := range targets {
		fmt.Printf("Fuzzing %s %s for %s...\n", t.pkg, t.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+t.name+"$", "-fuzztime="+fuzzTime, t.pkg); err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
	}
	return nil
}

// Coverage writes an HTML coverage report.
func (Test) Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any file needs gofmt.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave lint:fmt'", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every check CI runs.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Bench.Smoke,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("✓ CI gate passed")
	return nil
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum changed after 'go mod tidy'")
	}
	return nil
}

// Cross builds for the platforms autosarlint is released on.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64", "darwin/arm64", "windows/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs the Go benchmarks.
func (Bench) Default() error {
	return gotestsum("pkgname-and-test-fails", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Profile lints $AUTOSARLINT_BENCH_DIR (default ".") with the built binary
// and writes CPU and heap profiles to bench/.
func (Bench) Profile() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("AUTOSARLINT_BENCH_DIR"), ".")
	if err := os.MkdirAll("bench", 0o755); err != nil {
		return fmt.Errorf("create bench directory: %w", err)
	}
	fmt.Printf("Profiling autosarlint over %s...\n", dir)
	_, err := runLinter("lint", "--format", "summary",
		"--cpuprofile", "bench/cpu.pprof",
		"--memprofile", "bench/mem.pprof",
		dir,
	)
	return err
}

// Smoke lints a small C++ unit with known violations using the built
// binary and checks that they are reported.
func (Bench) Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "autosarlint-smoke")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	unit := filepath.Join(dir, "smoke.cpp")
	src := "int* p = NULL;\nvoid f() {\n  goto end;\nend:;\n}\n"
	if err := os.WriteFile(unit, []byte(src), 0o644); err != nil {
		return err
	}

	code, err := runLinter("lint", "--format", "json", "--color", "never", unit)
	if err != nil {
		return err
	}
	if code != 1 {
		return fmt.Errorf("lint exit code %d, want 1 for a unit with violations", code)
	}
	if _, err := runLinter("rules", "--format", "json"); err != nil {
		return err
	}
	fmt.Println("✓ Smoke checks passed")
	return nil
}

// runLinter runs the built binary and returns its exit code. Codes 1 and 2
// report findings and are not errors.
func runLinter(args ...string) (int, error) {
	cmd := exec.Command(binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() <= 2 {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, fmt.Errorf("autosarlint %s: %w", strings.Join(args, " "), err)
	}
	return 0, nil
}

func gotestsum(format string, args ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	full := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}, args...)
	return sh.RunV("go", full...)
}

func readModFiles() (string, error) {
	var sb strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		sb.Write(data)
	}
	return sb.String(), nil
}

// gitOutput runs git and returns trimmed stdout, or "" on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into main.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
