package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-lens/internal/classify"
	"github.com/insightdelivered/statement-lens/internal/models"
)

// TextParser rebuilds transactions from statement text that has lost its row
// structure, typically the output of PDF text extraction.
//
// Each row in such text reads "<date> <description> <amount> <balance>", but
// rows run together and several rows can share one date. The text is split at
// date anchors ("8 Dec", "Dec 8", "December 8", "8Dec"), then each segment is
// peeled from the right: the last two money tokens are the balance and the
// amount of the final row, the text before the amount is its description.
type TextParser struct{}

const (
	monthAlternation = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

	// maxDescriptionLen keeps a description from swallowing earlier rows.
	maxDescriptionLen = 220
	// minResidualLen stops peeling once the chunk is too short to hold a row.
	minResidualLen = 5
)

var (
	// "8 Dec" / "8Dec" (groups 1,2) or "Dec 8" / "December 8" (groups 3,4)
	dateAnchorPattern = regexp.MustCompile(
		`(?i)\b(\d{1,2})\s*(` + monthAlternation + `)\b|\b(` + monthAlternation + `)\s*(\d{1,2})\b`,
	)
	// 1,234.56 / 4.50: two decimals, optional thousands separators
	moneyPattern = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*\.\d{2}\b`)

	lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")
)

func (p *TextParser) Format() models.Format {
	return models.FormatText
}

type anchor struct {
	start, end int
	date       string
}

func (p *TextParser) Parse(raw string) *models.Statement {
	st := &models.Statement{Format: models.FormatText}

	text := normalizeSpace(lineBreaks.Replace(raw))
	anchors := findAnchors(text)
	if len(anchors) == 0 {
		return st
	}

	// Segments are visited last to first and each one is peeled right to
	// left, so rows are produced newest first. A single reversal at the end
	// restores statement order.
	var rows []models.Transaction
	debug := make([]models.DebugLine, len(anchors))
	for i := len(anchors) - 1; i >= 0; i-- {
		a := anchors[i]
		end := len(text)
		if i+1 < len(anchors) {
			end = anchors[i+1].start
		}

		segment := text[a.start:end]
		debug[i] = models.DebugLine{Index: i, Text: segment}

		if reason := boilerplate(segment); reason != "" {
			debug[i].Result = "skipped"
			debug[i].Reason = reason
			continue
		}

		peeled := peelSegment(a.date, normalizeSpace(text[a.end:end]))
		if len(peeled) == 0 {
			debug[i].Result = "exhausted"
			debug[i].Reason = "fewer than two money values"
			continue
		}
		debug[i].Result = "parsed"
		debug[i].Reason = fmt.Sprintf("%d row(s)", len(peeled))
		rows = append(rows, peeled...)
	}

	for l, r := 0, len(rows)-1; l < r; l, r = l+1, r-1 {
		rows[l], rows[r] = rows[r], rows[l]
	}

	st.Transactions = dedupe(rows)
	st.DebugLines = debug
	return st
}

// findAnchors scans for date tokens. A candidate that is really part of a
// number ("4.50 Dec", "Mar 12.99") is rejected and the scan resumes one byte
// further on, so a genuine date overlapping it ("Dec 9") is still found.
func findAnchors(text string) []anchor {
	var anchors []anchor
	for off := 0; off < len(text); {
		m := dateAnchorPattern.FindStringSubmatchIndex(text[off:])
		if m == nil {
			break
		}
		for i := range m {
			if m[i] >= 0 {
				m[i] += off
			}
		}
		// \b is evaluated on text[off:], so only insideNumber sees the byte
		// before the match; its alnum check must stay.
		if insideNumber(text, m) {
			off = m[0] + 1
			continue
		}

		var day, month string
		if m[2] >= 0 {
			day, month = text[m[2]:m[3]], text[m[4]:m[5]]
		} else {
			month, day = text[m[6]:m[7]], text[m[8]:m[9]]
		}
		anchors = append(anchors, anchor{
			start: m[0],
			end:   m[1],
			date:  day + " " + shortMonth(month),
		})
		off = m[1]
	}
	return anchors
}

func insideNumber(text string, m []int) bool {
	if m[0] > 0 {
		prev := text[m[0]-1]
		if isAlnum(prev) {
			return true
		}
		// day-first: "4.50 Dec" has the day glued to a decimal point
		if m[2] >= 0 && (prev == '.' || prev == ',') {
			return true
		}
	}
	// day-last: "Mar 12.99" has the day glued to the cents
	if m[2] < 0 && m[1]+1 < len(text) {
		next := text[m[1]]
		if (next == '.' || next == ',') && isDigit(text[m[1]+1]) {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlnum(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// boilerplate returns why a segment is statement furniture rather than
// transactions, or "" when it should be parsed.
func boilerplate(segment string) string {
	low := strings.ToLower(segment)
	switch {
	case strings.Contains(low, "opening balance"), strings.Contains(low, "closing balance"):
		return "opening/closing balance"
	case strings.Contains(low, "withdrawals") && strings.Contains(low, "deposits") && strings.Contains(low, "balance"):
		return "column headers"
	case strings.Contains(low, "cyber") && strings.Contains(low, "scam"):
		return "disclaimer"
	}
	return ""
}

// peelSegment consumes rows from the right end of chunk until fewer than two
// money values remain. Rows are returned in the order peeled (last row first).
// Every pass removes at least the amount and balance tokens, so the loop runs
// at most once per pair of money tokens.
func peelSegment(date, chunk string) []models.Transaction {
	var out []models.Transaction
	for len(chunk) >= minResidualLen {
		locs := moneyPattern.FindAllStringIndex(chunk, -1)
		if len(locs) < 2 {
			break
		}
		amountLoc, balanceLoc := locs[len(locs)-2], locs[len(locs)-1]

		amount := parseMoney(chunk[amountLoc[0]:amountLoc[1]])
		balance := parseBalance(chunk[balanceLoc[0]:balanceLoc[1]])
		before := chunk[:amountLoc[0]]
		desc := rowDescription(before)

		withdrawal, deposit := amount, decimal.Zero
		if classify.LooksLikeDeposit(desc) {
			withdrawal, deposit = decimal.Zero, amount
		}

		out = append(out, newTransaction(date, desc, withdrawal, deposit, balance))
		chunk = normalizeSpace(before)
	}
	return out
}

// rowDescription is all text in front of a row's amount, capped to the last
// maxDescriptionLen characters. Earlier rows of the same segment stay in the
// window, so their keywords take part in the direction check.
func rowDescription(before string) string {
	return strings.TrimSpace(lastRunes(normalizeSpace(before), maxDescriptionLen))
}

type dedupeKey struct {
	date, balance, withdrawal, deposit, description string
}

// dedupe drops repeated rows, keeping the first occurrence. Repeats come from
// anchors matching the same text twice, e.g. a page header echoed per page.
func dedupe(rows []models.Transaction) []models.Transaction {
	seen := make(map[dedupeKey]bool, len(rows))
	var out []models.Transaction
	for _, t := range rows {
		k := dedupeKey{
			date:        t.Date,
			balance:     t.Balance.Decimal.String(),
			withdrawal:  t.Withdrawal.String(),
			deposit:     t.Deposit.String(),
			description: t.Description,
		}
		if !t.Balance.Valid {
			k.balance = ""
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}
