//go:build mage

// Package main provides build targets for cubelayers using Mage.
//
// Usage:
//
//	mage build       Compile the cubelayers binary to bin/
//	mage test:all    Run all tests
//	mage test:race   Run all tests with the race detector
//	mage vet         Run go vet
//	mage clean       Remove build artifacts
//	mage install     Install cubelayers to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "cubelayers"
	binaryDir  = "bin"
	cmdDir     = "./cmd/cubelayers"
)

// Build compiles the cubelayers binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test groups test targets.
type Test mg.Namespace

// All runs every package's tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every package's tests with the race detector. The session
// and animation tests exercise concurrent callers.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV(binGo, "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
