package parser

import "strings"

// Tokenize splits comma-separated text into rows of raw fields.
//
// Quoting follows the usual spreadsheet export rules: a '"' toggles the quoted
// state and is not copied, '""' inside quotes is a literal quote, and commas
// and line breaks (\n, \r\n or a bare \r) only separate outside quotes.
// Rows whose fields are all blank are dropped. Unbalanced quotes never fail;
// the quoted state simply runs to the end of the input.
//
// encoding/csv is not used because it rejects bare quotes and unbalanced
// quoting instead of degrading.
func Tokenize(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if !blankRow(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"' && inQuotes && i+1 < len(text) && text[i+1] == '"':
			field.WriteByte('"')
			i++
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			endField()
		case (ch == '\n' || ch == '\r') && !inQuotes:
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		default:
			field.WriteByte(ch)
		}
	}
	endRow()

	return rows
}

func blankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
