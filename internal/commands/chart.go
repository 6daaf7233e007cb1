package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-lens/internal/charts"
	"github.com/insightdelivered/statement-lens/internal/summary"
)

func newChartCommand(a *app) *cobra.Command {
	var format string
	var kind string
	var output string

	cmd := &cobra.Command{
		Use:   "chart <statement>",
		Short: "Render a PNG chart of a statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.load(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			s := summary.Summarize(st.Transactions)

			var img []byte
			switch kind {
			case "histogram":
				img, err = charts.Histogram(s.Histogram)
			case "categories":
				img, err = charts.Breakdown("Spending by Category", s.Categories)
			case "merchants":
				img, err = charts.Breakdown("Spending by Merchant", s.Merchants)
			default:
				return fmt.Errorf("unknown chart %q, supported: histogram, categories, merchants", kind)
			}
			if err != nil {
				return err
			}

			if output == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				output = base + "-" + kind + ".png"
			}
			if err := os.WriteFile(output, img, 0o644); err != nil {
				return fmt.Errorf("writing chart: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: csv, text, pdf (detected if omitted)")
	cmd.Flags().StringVar(&kind, "kind", "histogram", "chart kind: histogram, categories, merchants")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path")

	return cmd
}
