package types

import (
	"errors"
	"io"
	"strings"
)

// Animal kinds recognized by NewAnimal and the pets table.
const (
	KindDog = "dog"
)

// ErrUnknownKind is returned when a kind names no known variant.
var ErrUnknownKind = errors.New("unknown animal kind")

// Speaker is an Animal whose sound line can also be written to any writer.
// Every variant built by NewAnimal is a Speaker.
type Speaker interface {
	Animal
	WriteSound(w io.Writer) error
}

// Kinds returns the recognized animal kinds.
func Kinds() []string {
	return []string{KindDog}
}

// NormalizeKind lowercases and trims kind. It returns ErrUnknownKind when the
// result is not a recognized kind.
func NormalizeKind(kind string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(kind))
	switch k {
	case KindDog:
		return k, nil
	default:
		return "", ErrUnknownKind
	}
}

// NewAnimal constructs the variant for kind with the given name.
func NewAnimal(kind, name string) (Speaker, error) {
	k, err := NormalizeKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindDog:
		return NewDog(name), nil
	}
	return nil, ErrUnknownKind
}
