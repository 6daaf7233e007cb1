package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/statement-lens/internal/logger"
)

// PDFExtractor reads the text layer of a PDF. When the Go library cannot
// decode it, the document is handed to pdftotext (poppler-utils) and, if OCR
// is enabled, rasterized and run through tesseract.
type PDFExtractor struct {
	OCR bool
}

// NewPDFExtractor returns a PDFExtractor with OCR fallback on or off.
func NewPDFExtractor(ocr bool) *PDFExtractor {
	return &PDFExtractor{OCR: ocr}
}

// Extract returns the document text with pages separated by blank lines.
// Methods are tried until one yields Readable text; when none does, the first
// non-empty text is returned as is. ErrUnreadable means every method came
// back empty.
func (e *PDFExtractor) Extract(ctx context.Context, document []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	log := logger.FromContext(ctx)

	// first non-empty text, returned when nothing passes Readable
	var fallback string
	keep := func(text string) {
		if fallback == "" && strings.TrimSpace(text) != "" {
			fallback = text
		}
	}

	text, libErr := extractWithLibrary(document)
	keep(text)
	if libErr == nil && Readable(text) {
		log.Debug().Str("method", "library").Int("chars", len(text)).Msg("extracted pdf text")
		return text, nil
	}
	if libErr != nil {
		log.Debug().Err(libErr).Msg("pdf library could not read document")
	}

	text, err := extractWithPdftotext(ctx, document)
	keep(text)
	if err == nil && Readable(text) {
		log.Debug().Str("method", "pdftotext").Int("chars", len(text)).Msg("extracted pdf text")
		return text, nil
	}
	if err != nil {
		log.Debug().Err(err).Msg("pdftotext fallback failed")
	}

	if e.OCR {
		text, err = extractWithOCR(ctx, document)
		keep(text)
		if err == nil && Readable(text) {
			log.Debug().Str("method", "ocr").Int("chars", len(text)).Msg("extracted pdf text")
			return text, nil
		}
		if err != nil {
			log.Warn().Err(err).Msg("ocr fallback failed")
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if fallback != "" {
		log.Debug().Int("chars", len(fallback)).Msg("no method produced statement-like text, returning raw text")
		return fallback, nil
	}
	if libErr != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, libErr)
	}
	return "", ErrUnreadable
}

// extractWithLibrary tries the ledongthuc/pdf extraction paths in order of
// layout fidelity and returns the first readable result.
func extractWithLibrary(document []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return "", err
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	methods := []func() string{
		func() string { return joinPages(extractByRow(r, numPages)) },
		func() string { return joinPages(extractByContent(r, numPages)) },
		func() string { return joinPages(extractByPagePlainText(r, numPages)) },
		func() string { return extractByReaderPlainText(r) },
	}
	var best string
	for _, m := range methods {
		text = m()
		if Readable(text) {
			return text, nil
		}
		if best == "" && strings.TrimSpace(text) != "" {
			best = text
		}
	}
	return best, nil
}

func joinPages(pages []string) string {
	return strings.Join(pages, "\n\n")
}

// extractByRow keeps the library's row grouping; best for well-formed PDFs.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			parts := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// columnGap is the horizontal distance, in points, treated as a column break.
const columnGap = 15

// extractByContent rebuilds rows from positioned glyphs: glyphs are grouped
// by rounded Y (top of page first) and ordered by X within a row.
func extractByContent(r *pdf.Reader, numPages int) []string {
	type glyph struct {
		x float64
		s string
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rows := make(map[int][]glyph)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			y := int(math.Round(t.Y))
			rows[y] = append(rows[y], glyph{x: t.X, s: t.S})
		}

		ys := make([]int, 0, len(rows))
		for y := range rows {
			ys = append(ys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		var lines []string
		for _, y := range ys {
			glyphs := rows[y]
			sort.Slice(glyphs, func(a, b int) bool { return glyphs[a].x < glyphs[b].x })

			var b strings.Builder
			for j, g := range glyphs {
				if j > 0 && g.x-glyphs[j-1].x > columnGap {
					b.WriteString("  ")
				}
				b.WriteString(g.s)
			}
			if line := strings.TrimSpace(b.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func extractByPagePlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// extractWithPdftotext runs poppler's pdftotext over a temporary copy of the
// document.
func extractWithPdftotext(ctx context.Context, document []byte) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}

	path, cleanup, err := writeTemp(document)
	if err != nil {
		return "", err
	}
	defer cleanup()

	out, err := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("pdftotext produced no output")
	}
	return text, nil
}

// writeTemp stores document in a temporary .pdf file for the external tools.
func writeTemp(document []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	cleanup := func() { os.Remove(f.Name()) }

	if _, err := f.Write(document); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	return f.Name(), cleanup, nil
}
