// Package extractor turns statement documents into plain text for the text
// parser. It only recovers characters; row structure is rebuilt later.
package extractor

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

// ErrUnreadable is returned when no extraction method produced any text.
var ErrUnreadable = errors.New("no readable text could be extracted")

// Extractor converts a document to text.
//
//go:generate mockgen -destination=mocks/mock_extractor.go -source=extractor.go Extractor
type Extractor interface {
	Extract(ctx context.Context, document []byte) (string, error)
}

const (
	minReadableLen     = 50
	minReadableQuality = 0.6
)

// statementWords appear in virtually every bank or card statement. Text
// containing none of them is almost certainly decoding garbage.
var statementWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "deposit",
	"withdrawal", "opening", "closing", "transfer", "purchase",
	"page", "period",
}

// Readable reports whether extracted text is long enough, mostly plain ASCII
// and mentions at least one statement word. Extractors use it to pick between
// methods.
func Readable(text string) bool {
	if len(strings.TrimSpace(text)) <= minReadableLen {
		return false
	}
	if quality(text) <= minReadableQuality {
		return false
	}
	low := strings.ToLower(text)
	for _, w := range statementWords {
		if strings.Contains(low, w) {
			return true
		}
	}
	return false
}

// quality is the share of runes that are ASCII letters, digits, whitespace or
// punctuation found on statements. unicode.IsLetter is too lenient here:
// fonts with identity encodings decode to runs of accented letters.
func quality(text string) float64 {
	total, readable := 0, 0
	for _, r := range text {
		total++
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			readable++
		case unicode.IsSpace(r):
			readable++
		case strings.ContainsRune(".,-/:;()'\"$£€%&@#!?+=*", r):
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
