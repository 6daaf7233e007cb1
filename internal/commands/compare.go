package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-lens/internal/models"
	"github.com/insightdelivered/statement-lens/internal/summary"
)

func newCompareCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compare <statementA> <statementB>",
		Short: "Compare two statements (deltas are B minus A)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docA, err := readDocument(args[0], "")
			if err != nil {
				return err
			}
			docB, err := readDocument(args[1], "")
			if err != nil {
				return err
			}

			stA, stB, err := a.service().LoadPair(cmd.Context(), docA, docB)
			if err != nil {
				return err
			}
			cmp := summary.Compare(stA.Transactions, stB.Transactions)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cmp)
			}
			printComparison(out, cmp)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")

	return cmd
}

func printComparison(out io.Writer, cmp models.Comparison) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tA\tB\tDelta")
	fmt.Fprintf(tw, "Spent\t%s\t%s\t%s\n", money(cmp.A.Spent), money(cmp.B.Spent), money(cmp.Delta.Spent))
	fmt.Fprintf(tw, "Income\t%s\t%s\t%s\n", money(cmp.A.Income), money(cmp.B.Income), money(cmp.Delta.Income))
	fmt.Fprintf(tw, "Net\t%s\t%s\t%s\n", money(cmp.A.Net), money(cmp.B.Net), money(cmp.Delta.Net))
	fmt.Fprintf(tw, "Transfers\t%s\t%s\t%s\n", money(cmp.A.Transfers), money(cmp.B.Transfers), money(cmp.Delta.Transfers))
	tw.Flush()

	printDeltas(out, "Categories", cmp.Categories)
	printDeltas(out, "Merchants", cmp.Merchants)
}

func printDeltas(out io.Writer, title string, deltas []models.NamedDelta) {
	fmt.Fprintln(out)
	heading.Fprintln(out, title)
	if len(deltas) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, d := range deltas {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", d.Name, money(d.A), money(d.B), money(d.Delta))
	}
	tw.Flush()
}
