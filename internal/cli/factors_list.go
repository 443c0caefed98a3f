package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// factorsTablePadding is the minimum padding between factor table columns.
const factorsTablePadding = 2

//nolint:gochecknoglobals // Lip Gloss styles are conventionally package-level.
var factorsHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// newFactorsCmd creates the "factors" command group.
func newFactorsCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{Use: "factors", Short: "Emission factor commands"}
	cmd.AddCommand(newFactorsListCmd(state))
	return cmd
}

// newFactorsListCmd creates "factors list": prints the effective factor
// table, including any configured overlay.
func newFactorsListCmd(state *appState) *cobra.Command {
	var overlay string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the effective emission factor table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := state.registry(overlay)
			if err != nil {
				return err
			}

			heading := fmt.Sprintf("EMISSION FACTORS (%d)", registry.Len())
			if isTerminal(os.Stdout) {
				heading = factorsHeadingStyle.Render(heading)
			}
			cmd.Println(heading)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, factorsTablePadding, ' ', 0)
			fmt.Fprintln(tw, "KEY\tVALUE\tUNIT\tSOURCE")
			fmt.Fprintln(tw, "---\t-----\t----\t------")
			for _, key := range registry.Keys() {
				factor, _ := registry.Lookup(key)
				fmt.Fprintf(tw, "%s\t%g\t%s\t%s\n",
					factor.Key, factor.ValuePerUnit, factor.Unit, factor.SourceReference())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&overlay, "factors-overlay", "", "factor overlay YAML file")
	return cmd
}
