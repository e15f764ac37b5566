//go:build mage

// Package main contains Mage build targets for msword2image developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "msword2image"
	cmdPkg     = "./cmd/msword2image"
	secretsDir = ".secrets"
)

// secretFiles are created empty by Init so the user only has to fill them in.
var secretFiles = []string{
	"msword2image-api-user",
	"msword2image-api-key",
}

// Init creates the .secrets/ directory with placeholder credential files.
func Init() error {
	if err := os.MkdirAll(secretsDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", secretsDir, err)
	}
	for _, name := range secretFiles {
		p := filepath.Join(secretsDir, name)
		if _, err := os.Stat(p); err == nil {
			fmt.Println("   exists:", p)
			continue
		}
		if err := os.WriteFile(p, nil, 0o600); err != nil {
			return fmt.Errorf("creating %s: %w", p, err)
		}
		fmt.Println("  created:", p)
	}
	fmt.Println("Fill in the files under .secrets/ with your msword2image account.")
	return nil
}

// Build compiles the CLI binary into bin/, stamping the version from
// the VERSION environment variable (default "dev").
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// All runs the tests, then builds the binary.
func All() {
	mg.SerialDeps(Test, Build)
}

// Stats prints non-blank Go line counts for production and test code.
func Stats() error {
	var prod, tests int
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || (d.Name() != "." && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			tests += n
		} else {
			prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", tests)
	return nil
}
