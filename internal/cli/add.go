package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kennel/pkg/types"
)

func newAddCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register an animal in the roster",
		Long: `Add registers a named animal and prints its ID.

Example:
  kennel add Rex
  kennel add Rex --kind dog --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pet := &types.Pet{Name: args[0], Kind: kind}

			return withPets(func(tbl types.Table) error {
				id, err := tbl.Set("", pet)
				if err != nil {
					return fmt.Errorf("add pet: %w", err)
				}
				state.logger.Info("pet added", "pet_id", id, "kind", pet.Kind)

				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), newPetView(pet))
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", types.KindDog, "animal kind")
	return cmd
}
