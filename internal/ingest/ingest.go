// Package ingest turns an uploaded statement file into a parsed Statement:
// it picks the input format, extracts text from PDFs and runs the matching
// parser.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/insightdelivered/statement-lens/internal/extractor"
	"github.com/insightdelivered/statement-lens/internal/logger"
	"github.com/insightdelivered/statement-lens/internal/models"
	"github.com/insightdelivered/statement-lens/internal/parser"
)

var (
	// ErrUnsupportedFormat is returned for an explicit format no parser handles.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrEmptyDocument is returned when the uploaded file has no content.
	ErrEmptyDocument = errors.New("empty document")
)

// Document is one uploaded statement.
type Document struct {
	Name    string
	Content []byte
	// Format overrides detection when set.
	Format models.Format
}

// Service loads statements. The extractor is only consulted for PDFs.
type Service struct {
	extractor extractor.Extractor
}

// NewService returns a Service that uses ext for PDF text extraction.
func NewService(ext extractor.Extractor) *Service {
	return &Service{extractor: ext}
}

// Load parses one document. Parsing itself never fails; errors come from an
// unsupported format, an empty upload or PDF extraction.
func (s *Service) Load(ctx context.Context, doc Document) (*models.Statement, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	if len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	format := doc.Format
	if format == "" {
		format = parser.Detect(doc.Name, doc.Content)
	}

	p, err := parser.New(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	text := string(doc.Content)
	if format == models.FormatPDF {
		text, err = s.extractor.Extract(ctx, doc.Content)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", doc.Name, err)
		}
	}

	st := p.Parse(text)
	st.Format = format
	st.Source = doc.Name

	log.Info().
		Str("source", doc.Name).
		Str("format", string(format)).
		Int("rows", len(st.Transactions)).
		Dur("duration", time.Since(start)).
		Msg("parsed statement")

	return st, nil
}

// LoadPair loads two statements concurrently for an A/B comparison. If
// either fails the other is abandoned and the first error is returned.
func (s *Service) LoadPair(ctx context.Context, a, b Document) (*models.Statement, *models.Statement, error) {
	g, ctx := errgroup.WithContext(ctx)

	var stA, stB *models.Statement
	g.Go(func() error {
		var err error
		stA, err = s.Load(ctx, a)
		if err != nil {
			return fmt.Errorf("statement A: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stB, err = s.Load(ctx, b)
		if err != nil {
			return fmt.Errorf("statement B: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return stA, stB, nil
}
