// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "kennel"
	binaryDir  = "bin"
	cmdPkg     = "./cmd/kennel"
)

// binaryPath is where Build leaves the kennel executable.
var binaryPath = filepath.Join(binaryDir, binaryName)

// Build compiles cmd/kennel into bin/kennel.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-trimpath", "-o", binaryPath, cmdPkg)
}

// Smoke builds kennel and checks that "kennel bark Rex" prints the dog's line.
func Smoke() error {
	mg.Deps(Build)
	out, err := sh.Output(binaryPath, "bark", "Rex")
	if err != nil {
		return err
	}
	if want := "Rex says: Woof!"; strings.TrimSpace(out) != want {
		return fmt.Errorf("kennel bark Rex printed %q, want %q", out, want)
	}
	fmt.Println("smoke ok:", out)
	return nil
}

// Install puts kennel into GOBIN (or GOPATH/bin).
func Install() error {
	return sh.RunV(binGo, "install", "-trimpath", cmdPkg)
}

// Clean removes bin/, the coverage profile and any kennel state left in the
// working tree by manual runs.
func Clean() error {
	for _, path := range []string{binaryDir, coverProfile, ".kennel", ".kennel-db"} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return nil
}
