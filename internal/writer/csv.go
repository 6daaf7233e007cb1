package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-lens/internal/models"
)

// Columns is the CSV column order for exported transactions.
var Columns = []string{"Date", "Description", "Merchant", "Type", "Category", "Withdrawal", "Deposit", "Balance"}

// CSVWriter writes normalized transactions to CSV format.
type CSVWriter struct {
	// IncludeHeader adds "# Format", "# Source" and "# Count" rows before
	// the column headers.
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}

	if err := w.Write(f, st); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write writes the statement's transactions in CSV format to out.
func (w *CSVWriter) Write(out io.Writer, st *models.Statement) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		meta := [][]string{
			{"# Format", string(st.Format)},
			{"# Source", st.Source},
			{"# Count", strconv.Itoa(len(st.Transactions))},
		}
		for _, row := range meta {
			if row[1] == "" {
				continue
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range st.Transactions {
		row := []string{
			txn.Date,
			txn.Description,
			txn.Merchant,
			string(txn.Type),
			txn.Category,
			formatAmount(txn.Withdrawal),
			formatAmount(txn.Deposit),
			formatBalance(txn.Balance),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatAmount leaves the cell empty for the unused side of a row.
func formatAmount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}
	return amount.StringFixed(2)
}

// formatBalance writes a real zero balance as "0.00"; only a missing one is
// left empty.
func formatBalance(balance decimal.NullDecimal) string {
	if !balance.Valid {
		return ""
	}
	return balance.Decimal.StringFixed(2)
}
