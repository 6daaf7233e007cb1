package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-lens/internal/writer"
)

func newParseCommand(a *app) *cobra.Command {
	var format string
	var output string
	var noHeader bool
	var debug bool

	cmd := &cobra.Command{
		Use:   "parse <statement> [statement ...]",
		Short: "Convert statements to normalized CSV",
		Long: `Parse one or more statement exports (CSV, plain text or PDF) and write
a normalized CSV next to each input, or to --output. Use --output=- for stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && output != "-" && len(args) > 1 {
				return fmt.Errorf("--output takes a single input, got %d", len(args))
			}
			for _, path := range args {
				if err := a.runParse(cmd, path, format, output, !noHeader, debug); err != nil {
					return fmt.Errorf("processing %s: %w", path, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: csv, text, pdf (detected if omitted)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (defaults to the input name with .csv)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "omit the # metadata rows")
	cmd.Flags().BoolVar(&debug, "debug", false, "print what happened to every input row")

	return cmd
}

func (a *app) runParse(cmd *cobra.Command, path, format, output string, header, debug bool) error {
	st, err := a.load(cmd.Context(), path, format)
	if err != nil {
		return err
	}

	log := cmd.ErrOrStderr()
	fmt.Fprintf(log, "%s: %s, %d transaction(s)\n", path, st.Format, len(st.Transactions))
	if len(st.Transactions) == 0 {
		fmt.Fprintln(log, "  Warning: no transactions found. Try --format or --debug.")
	}
	if debug {
		for _, line := range st.DebugLines {
			fmt.Fprintf(log, "  [%d] %-9s %s %s\n", line.Index, line.Result, line.Reason, line.Text)
		}
	}

	w := &writer.CSVWriter{IncludeHeader: header}
	if output == "-" {
		return w.Write(cmd.OutOrStdout(), st)
	}

	outPath := output
	if outPath == "" {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
		if outPath == path {
			outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".normalized.csv"
		}
	}
	if err := w.WriteToFile(outPath, st); err != nil {
		return err
	}
	fmt.Fprintf(log, "  Output: %s\n", outPath)
	return nil
}
