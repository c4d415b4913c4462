//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the rankaroo project using Mage.
//
// Usage:
//
//	mage build       Compile rankaroo binary to bin/
//	mage test:all    Run all tests
//	mage test:unit   Run tests without the SQLite repository packages
//	mage test:race   Run all tests with the race detector
//	mage lint        Run golangci-lint
//	mage seed        Build, then load the sample data into ./.rankaroo-db
//	mage clean       Remove build artifacts
//	mage install     Install rankaroo to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "rankaroo"
	binaryDir  = "bin"
	cmdDir     = "./cmd/rankaroo"
)

// Build compiles the rankaroo binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
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

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Seed builds the binary and loads the sample categories into the default
// data directory.
func Seed() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName), "seed")
}
