// Package types defines the Animal abstraction and its variants, the Pet
// roster entity, the Kennel and Table storage interfaces, and the standard
// error values shared by the kennel backend and CLI.
package types
