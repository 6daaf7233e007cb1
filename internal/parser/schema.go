package parser

import "strings"

// Absent marks a column role missing from the header.
const Absent = -1

// Columns maps canonical roles to header indexes (or Absent).
type Columns struct {
	Date        int
	Description int
	Withdrawal  int
	Deposit     int
	Balance     int
	Amount      int
}

// DetectColumns maps a header row to column roles.
//
// Two layouts are handled: the debit-account export
// (Date, Description, Withdrawals, Deposits, Balance) and the credit-card export
// (Transaction Date, Merchant/Description, Amount ($)).
func DetectColumns(header []string) Columns {
	h := make([]string, len(header))
	for i, cell := range header {
		h[i] = normalizeHeader(cell)
	}

	cols := Columns{
		Date: findColumn(h, func(c string) bool {
			return c == "date" || strings.Contains(c, "transaction date")
		}),
		Description: findColumn(h, func(c string) bool {
			return c == "description" || strings.Contains(c, "merchant") || strings.Contains(c, "details")
		}),
		Withdrawal: findColumn(h, prefix("withdraw")),
		Deposit:    findColumn(h, prefix("deposit")),
		Balance:    findColumn(h, prefix("balance")),
		Amount: findColumn(h, func(c string) bool {
			return c == "amount" || strings.Contains(c, "amount ($)") || strings.Contains(c, "amount")
		}),
	}

	if cols.Description == Absent {
		cols.Description = findColumn(h, func(c string) bool {
			return strings.Contains(c, "memo") || strings.Contains(c, "payee")
		})
	}

	return cols
}

// HasMoney reports whether any money column was found.
func (c Columns) HasMoney() bool {
	return c.Withdrawal != Absent || c.Deposit != Absent || c.Amount != Absent
}

// headerIndex returns the index of the first row with a non-blank field, or
// len(rows) when there is none.
func headerIndex(rows [][]string) int {
	i := 0
	for i < len(rows) && blankRow(rows[i]) {
		i++
	}
	return i
}

func normalizeHeader(h string) string {
	return strings.ToLower(normalizeSpace(h))
}

func findColumn(header []string, match func(string) bool) int {
	for i, c := range header {
		if match(c) {
			return i
		}
	}
	return Absent
}

func prefix(p string) func(string) bool {
	return func(c string) bool { return strings.HasPrefix(c, p) }
}

// field returns the trimmed cell at idx, or "" when the role is absent or the
// row is short.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
