package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/statement-lens/internal/models"
)

// Parser defines the interface for statement parsers.
type Parser interface {
	// Parse turns statement text into transactions. It never fails: input it
	// cannot make sense of yields an empty statement.
	Parse(text string) *models.Statement
	// Format returns the input format the parser handles.
	Format() models.Format
}

// New returns the parser for the given input format. PDF statements are
// parsed from their extracted text, so they share the text parser.
func New(format models.Format) (Parser, error) {
	switch format {
	case models.FormatCSV:
		return &DelimitedParser{}, nil
	case models.FormatText, models.FormatPDF:
		return &TextParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

// sniffLimit bounds how much of a file is tokenized to find a header.
const sniffLimit = 4096

var pdfMagic = []byte("%PDF-")

// Detect guesses the input format from the file name and leading content.
// Anything that is neither a PDF nor a recognizable CSV export is treated as
// plain statement text.
func Detect(name string, content []byte) models.Format {
	if bytes.HasPrefix(content, pdfMagic) {
		return models.FormatPDF
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return models.FormatPDF
	case ".csv":
		return models.FormatCSV
	case ".txt":
		return models.FormatText
	}

	if looksDelimited(content) {
		return models.FormatCSV
	}
	return models.FormatText
}

// looksDelimited reports whether the first non-blank row reads as a statement
// header: a date or description column plus at least one money column.
func looksDelimited(content []byte) bool {
	head := content
	if len(head) > sniffLimit {
		head = head[:sniffLimit]
	}
	rows := Tokenize(string(head))
	hi := headerIndex(rows)
	if hi >= len(rows) {
		return false
	}
	cols := DetectColumns(rows[hi])
	return (cols.Date != Absent || cols.Description != Absent) && cols.HasMoney()
}
