//go:build mage

// Package main provides build targets for the kennel project using Mage.
//
// Usage:
//
//	mage build          Compile kennel binary to bin/
//	mage smoke          Build and run "kennel bark Rex"
//	mage test:all       Run all tests
//	mage test:unit      Run tests without -v or -race
//	mage test:cover     Run tests and write coverage.out
//	mage lint           Run go vet, then golangci-lint if installed
//	mage vet            Run go vet
//	mage clean          Remove build artifacts and local kennel state
//	mage install        go install cmd/kennel
//	mage stats          Print Go line counts per package
package main
