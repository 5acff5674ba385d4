package types

import "time"

// Pet is an animal registered in the kennel roster.
type Pet struct {
	PetID     string    // UUID v7, generated on creation.
	Name      string    // Name handed to the animal variant; may be empty.
	Kind      string    // One of the Kind constants.
	CreatedAt time.Time // Timestamp of registration.
}

// Animal builds the live variant for this pet.
// Returns ErrUnknownKind if Kind is not recognized.
func (p *Pet) Animal() (Speaker, error) {
	return NewAnimal(p.Kind, p.Name)
}
