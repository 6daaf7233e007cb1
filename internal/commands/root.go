// Package commands implements the statement-lens command line.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-lens/internal/api"
	"github.com/insightdelivered/statement-lens/internal/config"
	"github.com/insightdelivered/statement-lens/internal/extractor"
	"github.com/insightdelivered/statement-lens/internal/ingest"
	"github.com/insightdelivered/statement-lens/internal/logger"
	"github.com/insightdelivered/statement-lens/internal/models"
)

// app carries what every subcommand needs once the root has loaded config.
type app struct {
	configPath string
	cfg        *config.Config
	log        zerolog.Logger
	extractor  extractor.Extractor
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "statement-lens",
		Short:   "Parse, categorize and summarize bank statement exports",
		Version: api.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")

	rootCmd.AddCommand(
		newParseCommand(a),
		newSummaryCommand(a),
		newCompareCommand(a),
		newChartCommand(a),
		newServeCommand(a),
		newCategorizeCommand(),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	a.extractor = extractor.NewPDFExtractor(cfg.OCR)
	cmd.SetContext(logger.WithContext(cmd.Context(), a.log))
	return nil
}

func (a *app) service() *ingest.Service {
	return ingest.NewService(a.extractor)
}

// readDocument loads path from disk. format, when non-empty, overrides detection.
func readDocument(path, format string) (ingest.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ingest.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := ingest.Document{Name: filepath.Base(path), Content: content}
	if format != "" {
		f, ok := models.ParseFormat(format)
		if !ok {
			return doc, fmt.Errorf("unknown format %q, supported: csv, text, pdf", format)
		}
		doc.Format = f
	}
	return doc, nil
}

func (a *app) load(ctx context.Context, path, format string) (*models.Statement, error) {
	doc, err := readDocument(path, format)
	if err != nil {
		return nil, err
	}
	return a.service().Load(ctx, doc)
}
