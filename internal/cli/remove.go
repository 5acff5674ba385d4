package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kennel/pkg/types"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an animal from the roster",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withPets(func(tbl types.Table) error {
				if err := tbl.Delete(id); err != nil {
					if errors.Is(err, types.ErrNotFound) {
						return fmt.Errorf("pet %q: %w", id, err)
					}
					return fmt.Errorf("remove pet: %w", err)
				}
				state.logger.Info("pet removed", "pet_id", id)
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
				return nil
			})
		},
	}
}
