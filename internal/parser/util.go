package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// parseMoney converts a cell like "$1,234.56" to a decimal.
// Empty or unparsable text yields zero; a parse failure never propagates.
func parseMoney(s string) decimal.Decimal {
	d, ok := parseMoneyOK(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

// parseBalance is parseMoney for the balance column, where a missing value is
// kept as absent rather than zero.
func parseBalance(s string) decimal.NullDecimal {
	d, ok := parseMoneyOK(s)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func parseMoneyOK(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeSpace replaces non-breaking spaces, collapses whitespace runs
// (line breaks included) to a single space and trims the result.
func normalizeSpace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// monthNames maps every accepted spelling to its three-letter label.
var monthNames = map[string]string{
	"jan": "Jan", "january": "Jan",
	"feb": "Feb", "february": "Feb",
	"mar": "Mar", "march": "Mar",
	"apr": "Apr", "april": "Apr",
	"may": "May",
	"jun": "Jun", "june": "Jun",
	"jul": "Jul", "july": "Jul",
	"aug": "Aug", "august": "Aug",
	"sep": "Sep", "sept": "Sep", "september": "Sep",
	"oct": "Oct", "october": "Oct",
	"nov": "Nov", "november": "Nov",
	"dec": "Dec", "december": "Dec",
}

// shortMonth returns the three-letter label for a month token, or the token's
// first three letters when it is not a known spelling.
func shortMonth(m string) string {
	if label, ok := monthNames[strings.ToLower(m)]; ok {
		return label
	}
	if len(m) > 3 {
		return m[:3]
	}
	return m
}

// lastRunes returns at most the final n runes of s.
func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
