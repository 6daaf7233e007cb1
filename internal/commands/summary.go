package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-lens/internal/models"
	"github.com/insightdelivered/statement-lens/internal/summary"
)

var (
	positive = color.New(color.FgGreen)
	negative = color.New(color.FgRed)
	heading  = color.New(color.Bold)
)

func newSummaryCommand(a *app) *cobra.Command {
	var format string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary <statement>",
		Short: "Show totals, top categories and merchants, and the amount histogram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.load(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			s := summary.Summarize(st.Transactions)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			printSummary(out, len(st.Transactions), s)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: csv, text, pdf (detected if omitted)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")

	return cmd
}

func printSummary(out io.Writer, rows int, s models.Summary) {
	heading.Fprintf(out, "%d transaction(s)\n", rows)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Spent\t%s\n", money(s.Spent))
	fmt.Fprintf(tw, "Income\t%s\n", money(s.Income))
	fmt.Fprintf(tw, "Transfers\t%s\n", money(s.Transfers))
	tw.Flush()
	fmt.Fprint(out, "Net        ")
	signed(s.Net).Fprintln(out, money(s.Net))

	printBreakdown(out, "Categories", s.Categories)
	printBreakdown(out, "Merchants", s.Merchants)

	fmt.Fprintln(out)
	heading.Fprintln(out, "Spending amounts")
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, b := range s.Histogram.Bins {
		fmt.Fprintf(tw, "%s\t%d\t\n", b.Label, b.Count)
	}
	tw.Flush()
}

func printBreakdown(out io.Writer, title string, items []models.NamedAmount) {
	fmt.Fprintln(out)
	heading.Fprintln(out, title)
	if len(items) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, item := range items {
		if i == 10 {
			fmt.Fprintf(tw, "  ... %d more\t\n", len(items)-i)
			break
		}
		fmt.Fprintf(tw, "  %s\t%s\n", item.Name, money(item.Amount))
	}
	tw.Flush()
}

func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func signed(d decimal.Decimal) *color.Color {
	if d.IsNegative() {
		return negative
	}
	return positive
}
