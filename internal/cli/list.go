package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kennel/pkg/types"
)

func newListCmd() *cobra.Command {
	var kind, name string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered animals",
		Long: `List fetches the roster in registration order.

Example:
  kennel list
  kennel list --kind dog
  kennel list --name Rex --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := make(map[string]any)
			if cmd.Flags().Changed("kind") {
				filter["kind"] = kind
			}
			if cmd.Flags().Changed("name") {
				filter["name"] = name
			}

			return withPets(func(tbl types.Table) error {
				entities, err := tbl.Fetch(filter)
				if err != nil {
					return fmt.Errorf("fetch pets: %w", err)
				}

				pets := make([]*types.Pet, len(entities))
				for i, e := range entities {
					pets[i] = e.(*types.Pet)
				}

				if flags.jsonMode {
					views := make([]petView, len(pets))
					for i, p := range pets {
						views[i] = newPetView(p)
					}
					return printJSON(cmd.OutOrStdout(), views)
				}
				printPetTable(cmd.OutOrStdout(), pets)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "filter by kind")
	cmd.Flags().StringVar(&name, "name", "", "filter by exact name")
	return cmd
}

// printPetTable prints pets in a human-readable table.
func printPetTable(out io.Writer, pets []*types.Pet) {
	if len(pets) == 0 {
		fmt.Fprintln(out, "No pets found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tKIND\tNAME")
	for _, p := range pets {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.PetID, p.Kind, p.Name)
	}
	w.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(out, "Total: %d pet(s)\n", len(pets))
}
