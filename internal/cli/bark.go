package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kennel/pkg/types"
)

func newBarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bark <name>",
		Short: "Make a dog with the given name bark",
		Long: `Bark constructs a dog with the given name and prints its sound.
The roster is not touched. An empty name is allowed.

Example:
  kennel bark Rex
  kennel bark ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := types.NewDog(args[0]).WriteSound(cmd.OutOrStdout()); err != nil {
				return sysError(fmt.Errorf("write sound: %w", err))
			}
			return nil
		},
	}
}
