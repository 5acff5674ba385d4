package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kennel/pkg/types"
)

func newSpeakCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "speak [id...]",
		Short: "Make registered animals produce their sound",
		Long: `Speak builds each listed animal and prints its sound, one line per animal.
With --all, every animal in the roster speaks in registration order.

Example:
  kennel speak 0190c2f4-...
  kennel speak --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return userError(errors.New("speak: give at least one pet ID or --all"))
			}
			if all && len(args) > 0 {
				return userError(errors.New("speak: --all does not take pet IDs"))
			}

			return withPets(func(tbl types.Table) error {
				var pets []*types.Pet
				if all {
					entities, err := tbl.Fetch(nil)
					if err != nil {
						return fmt.Errorf("fetch pets: %w", err)
					}
					for _, e := range entities {
						pets = append(pets, e.(*types.Pet))
					}
				} else {
					for _, id := range args {
						pet, err := getPet(tbl, id)
						if err != nil {
							return err
						}
						pets = append(pets, pet)
					}
				}

				for _, pet := range pets {
					if err := speak(cmd.OutOrStdout(), pet); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "make every registered animal speak")
	return cmd
}

// speak builds pet's animal and writes its sound to out.
func speak(out io.Writer, pet *types.Pet) error {
	a, err := pet.Animal()
	if err != nil {
		return fmt.Errorf("pet %q: %w", pet.PetID, err)
	}
	if err := a.WriteSound(out); err != nil {
		return sysError(fmt.Errorf("write sound: %w", err))
	}
	return nil
}
