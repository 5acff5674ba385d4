package types

// Animal is the capability set every animal variant provides.
// A variant carries an immutable name, readable through GetName, and must
// supply its own MakeSound; there is no default sound.
type Animal interface {
	// GetName returns the name given at construction, unchanged.
	GetName() string

	// MakeSound writes the variant's sound line to standard output.
	MakeSound()
}

// animal holds the state shared by all variants. It implements GetName only,
// so it does not satisfy Animal on its own and cannot be used as one.
// Variants embed it and add MakeSound.
type animal struct {
	name string
}

// newAnimal stores name as given. Empty names are accepted.
func newAnimal(name string) animal {
	return animal{name: name}
}

// GetName returns the stored name.
func (a animal) GetName() string {
	return a.name
}
