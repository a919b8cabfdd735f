//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// Property tests run with this many checks under test:props.
const propChecks = "1000"

// Test groups test targets (all, unit, cover, props).
type Test mg.Namespace

// All runs all tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Unit runs tests in short mode, skipping the end-to-end command tests.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-short", "./...")
}

// Cover runs all tests with a coverage profile and prints the summary.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	out, err := sh.Output(binGo, "tool", "cover", "-func="+coverProfile)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// Props runs the property-based tests with more checks than the default.
func (Test) Props() error {
	return sh.RunV(binGo, "test", "-run", "Property", "./pkg/...", "./internal/...", "-args", "-rapid.checks="+propChecks)
}
