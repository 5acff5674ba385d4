// Package kennel holds release metadata for the kennel module.
package kennel

// Version is the semantic version of the kennel CLI and library.
const Version = "0.1.0"

// ModulePath is the Go module path of this repository.
const ModulePath = "github.com/mesh-intelligence/kennel"
