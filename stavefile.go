//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

var binaries = []string{"wordrank", "gutenfetch"}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles the wordrank and gutenfetch binaries.
func Build() error {
	st.Deps(Init)
	st.Deps(Build_Wordrank, Build_Gutenfetch)
	return nil
}

// Build_Wordrank compiles the wordrank binary with version information.
func Build_Wordrank() error {
	return buildBinary("wordrank")
}

// Build_Gutenfetch compiles the gutenfetch binary with version information.
func Build_Gutenfetch() error {
	return buildBinary("gutenfetch")
}

func buildBinary(name string) error {
	st.Deps(Init)

	out := "bin/" + name
	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}

	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", out, "./cmd/"+name)
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	date := time.Now().Format(time.RFC3339)

	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		date,
	)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort runs tests in short mode.
func TestShort() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-short", "-race", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if err := sh.Run("goimports", "-w", "."); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	for _, a := range append([]string{"bin/"}, binaries...) {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs the binaries to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	for _, name := range binaries {
		src := "bin/" + name
		dst := bin + "/" + name
		if runtime.GOOS == "windows" {
			dst += ".exe"
		}
		if err := sh.Copy(dst, src); err != nil {
			return fmt.Errorf("installing %s: %w", name, err)
		}
		if st.Verbose() {
			fmt.Printf("Installed %s to %s\n", name, dst)
		}
	}
	return nil
}

// Dict namespace for dictionary pipeline targets.
type Dict st.Namespace

// Tally folds new corpus books into the frequency tally.
// Reads WORDRANK_CORPUS and WORDRANK_STATE (defaults: books, freq_data.json).
func (Dict) Tally() error {
	st.Deps(Build_Wordrank)
	return sh.RunV("./bin/wordrank", "--mode", "tally",
		"--corpus", envOr("WORDRANK_CORPUS", "books"),
		"--state", envOr("WORDRANK_STATE", "freq_data.json"),
	)
}

// Build tallies new books and writes both dictionaries.
func (Dict) Build() error {
	st.Deps(Build_Wordrank)
	return sh.RunV("./bin/wordrank", "--mode", "all",
		"--corpus", envOr("WORDRANK_CORPUS", "books"),
		"--state", envOr("WORDRANK_STATE", "freq_data.json"),
		"--full-out", envOr("WORDRANK_FULL_OUT", "dictionary_full.txt"),
	)
}

// Variants regenerates the regional spelling list from the base word list.
func (Dict) Variants() error {
	st.Deps(Build_Wordrank)
	out, err := sh.Output("./bin/wordrank", "--mode", "variants")
	if err != nil {
		return err
	}
	return os.WriteFile(envOr("WORDRANK_REGIONAL", "us_uk_diff.txt"), []byte(out+"\n"), 0644)
}

// Corpus namespace for corpus acquisition targets.
type Corpus st.Namespace

// Fetch crawls the catalogue and downloads missing books.
func (Corpus) Fetch() error {
	st.Deps(Build_Gutenfetch)
	return sh.RunV("./bin/gutenfetch",
		"--catalog", envOr("WORDRANK_CATALOG", "gutenberg_books.json"),
		"--books", envOr("WORDRANK_CORPUS", "books"),
	)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, short tests).
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Tidy runs go mod tidy and verifies the go.sum is clean.
func Tidy() error {
	if err := sh.Run("go", "mod", "tidy"); err != nil {
		return err
	}
	output, err := sh.Output("git", "diff", "--exit-code", "go.sum")
	if err != nil {
		if output != "" {
			return fmt.Errorf("go.sum is not clean:\n%s", output)
		}
	}
	return nil
}
