package types

import (
	"fmt"
	"io"
	"os"
)

// Compile-time interface checks.
var (
	_ Animal  = (*Dog)(nil)
	_ Speaker = (*Dog)(nil)
)

// Dog is the concrete Animal variant that barks.
type Dog struct {
	animal
}

// NewDog returns a Dog named name. The name is forwarded verbatim.
func NewDog(name string) *Dog {
	return &Dog{animal: newAnimal(name)}
}

// MakeSound prints "<name> says: Woof!" to standard output.
// Write failures on stdout are ignored.
func (d *Dog) MakeSound() {
	_ = d.WriteSound(os.Stdout)
}

// WriteSound writes the line MakeSound prints to w.
func (d *Dog) WriteSound(w io.Writer) error {
	_, err := fmt.Fprintln(w, d.GetName()+" says: Woof!")
	return err
}
