package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-lens/internal/classify"
	"github.com/insightdelivered/statement-lens/internal/models"
)

// DelimitedParser handles comma-separated statement exports.
//
// Supported layouts:
//
//	Debit account: Date, Description, Withdrawals, Deposits, Balance
//	Credit card:   Transaction Date, Description/Merchant, Amount ($)
//
// In the card layout the amount is unsigned; refunds and credits are told
// apart from purchases by description keywords.
type DelimitedParser struct{}

func (p *DelimitedParser) Format() models.Format {
	return models.FormatCSV
}

func (p *DelimitedParser) Parse(text string) *models.Statement {
	st := &models.Statement{Format: models.FormatCSV}

	rows := Tokenize(text)
	if len(rows) < 2 {
		return st
	}

	hi := headerIndex(rows)
	if hi >= len(rows) {
		return st
	}
	cols := DetectColumns(rows[hi])
	st.DebugLines = append(st.DebugLines, models.DebugLine{
		Index:  hi,
		Text:   strings.Join(rows[hi], ","),
		Result: "header",
	})

	for r := hi + 1; r < len(rows); r++ {
		line := models.DebugLine{Index: r, Text: strings.Join(rows[r], ",")}

		txn, ok := normalizeRow(rows[r], cols)
		if !ok {
			line.Result = "skipped"
			line.Reason = "no date or description"
			st.DebugLines = append(st.DebugLines, line)
			continue
		}

		line.Result = "parsed"
		st.DebugLines = append(st.DebugLines, line)
		st.Transactions = append(st.Transactions, txn)
	}

	return st
}

// normalizeRow converts one data row into a Transaction. It reports false for
// rows with neither a date nor a description.
func normalizeRow(row []string, cols Columns) (models.Transaction, bool) {
	date := normalizeSpace(field(row, cols.Date))
	desc := normalizeSpace(field(row, cols.Description))
	if date == "" && desc == "" {
		return models.Transaction{}, false
	}

	// Some exports print debits as negative numbers in the withdrawal column;
	// the column already carries the direction.
	withdrawal := decimal.Zero
	if cols.Withdrawal != Absent {
		withdrawal = parseMoney(field(row, cols.Withdrawal)).Abs()
	}
	deposit := decimal.Zero
	if cols.Deposit != Absent {
		deposit = parseMoney(field(row, cols.Deposit)).Abs()
	}

	if withdrawal.IsZero() && deposit.IsZero() && cols.Amount != Absent {
		amount := parseMoney(field(row, cols.Amount))
		if amount.IsPositive() {
			if classify.LooksLikeCredit(desc) {
				deposit = amount
			} else {
				withdrawal = amount
			}
		}
	}

	// A row filled in on both sides is netted so only one side is set.
	if withdrawal.IsPositive() && deposit.IsPositive() {
		net := deposit.Sub(withdrawal)
		withdrawal, deposit = decimal.Zero, decimal.Zero
		if net.IsPositive() {
			deposit = net
		} else {
			withdrawal = net.Neg()
		}
	}

	balance := decimal.NullDecimal{}
	if cols.Balance != Absent {
		balance = parseBalance(field(row, cols.Balance))
	}

	return newTransaction(date, desc, withdrawal, deposit, balance), true
}

// newTransaction finishes a row the same way for every parsing path:
// classification, type forcing by money column and merchant grouping.
func newTransaction(date, desc string, withdrawal, deposit decimal.Decimal, balance decimal.NullDecimal) models.Transaction {
	base := classify.Classify(desc)
	return models.Transaction{
		Date:        date,
		Description: desc,
		Merchant:    classify.Merchant(desc),
		Withdrawal:  withdrawal,
		Deposit:     deposit,
		Balance:     balance,
		Type:        classify.Resolve(base.Type, withdrawal.IsPositive(), deposit.IsPositive()),
		Category:    base.Category,
	}
}
