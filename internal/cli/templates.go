package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/popcli/pop/internal/templates"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the parachain templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ALIAS\tNAME\tREPOSITORY")
		for _, t := range templates.All() {
			marker := ""
			if t == templates.Default {
				marker = " (default)"
			}
			fmt.Fprintf(w, "%s\t%s%s\t%s\n", strings.Join(t.Aliases(), ", "), t, marker, t.Repository())
		}
		return w.Flush()
	},
}
