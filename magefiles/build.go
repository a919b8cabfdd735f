//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the yo project using Mage.
//
// Usage:
//
//	mage build        Compile the yo binary to bin/
//	mage test:all     Run all tests
//	mage test:unit    Run tests in short mode
//	mage test:cover   Run tests with a coverage profile
//	mage test:props   Run property tests with more checks
//	mage lint         Run golangci-lint
//	mage vet          Run go vet
//	mage clean        Remove build artifacts
//	mage install      Install yo to GOPATH/bin
//	mage stats        Print Go LOC and documentation word counts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "yo"
	binaryDir  = "bin"
	cmdDir     = "./cmd/yo"
)

// Build compiles the yo binary to bin/.
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
	if err := os.Remove(coverProfile); err != nil && !os.IsNotExist(err) {
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
