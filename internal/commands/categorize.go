package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-lens/internal/classify"
)

// newCategorizeCommand runs both classifiers on a description, handy for
// checking the keyword tables without a statement.
func newCategorizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <description>",
		Short: "Show how a description is classified",
		Args:  cobra.MinimumNArgs(1),
		// Needs no config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.Join(args, " ")
			r := classify.Classify(desc)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Type\t%s\n", r.Type)
			fmt.Fprintf(tw, "Category\t%s\n", r.Category)
			fmt.Fprintf(tw, "Quick category\t%s\n", classify.Categorize(desc))
			fmt.Fprintf(tw, "Merchant\t%s\n", classify.Merchant(desc))
			fmt.Fprintf(tw, "Credit\t%t\n", classify.LooksLikeCredit(desc))
			return tw.Flush()
		},
	}
}
