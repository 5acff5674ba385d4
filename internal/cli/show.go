package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kennel/pkg/types"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a registered animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPets(func(tbl types.Table) error {
				pet, err := getPet(tbl, args[0])
				if err != nil {
					return err
				}

				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), newPetView(pet))
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:      %s\n", pet.PetID)
				fmt.Fprintf(out, "Name:    %s\n", pet.Name)
				fmt.Fprintf(out, "Kind:    %s\n", pet.Kind)
				fmt.Fprintf(out, "Created: %s\n", pet.CreatedAt.Format(time.RFC3339))
				return nil
			})
		},
	}
}
