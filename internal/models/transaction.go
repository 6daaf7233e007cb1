package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TxnType is the direction/purpose of money for a transaction.
type TxnType string

const (
	TypeSpend    TxnType = "spend"
	TypeIncome   TxnType = "income"
	TypeTransfer TxnType = "transfer"
)

// Transaction represents a single normalized statement row.
type Transaction struct {
	Date        string              `json:"date"`
	Description string              `json:"description"`
	Merchant    string              `json:"merchant"`
	Withdrawal  decimal.Decimal     `json:"withdrawal"`
	Deposit     decimal.Decimal     `json:"deposit"`
	Balance     decimal.NullDecimal `json:"balance"` // Valid=false when the source has no balance
	Type        TxnType             `json:"type"`
	Category    string              `json:"category"`
}

// Format identifies which parsing path a statement went through.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps user input ("csv", "TXT", "pdf") to a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, true
	case "text", "txt":
		return FormatText, true
	case "pdf":
		return FormatPDF, true
	}
	return "", false
}

// DebugLine captures what the parser did with an input row or text segment.
type DebugLine struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Result string `json:"result"` // "parsed", "skipped", "exhausted", "header"
	Reason string `json:"reason,omitempty"`
}

// Statement holds the result of parsing one uploaded export.
type Statement struct {
	Format       Format        `json:"format"`
	Source       string        `json:"source,omitempty"`
	Transactions []Transaction `json:"transactions"`
	DebugLines   []DebugLine   `json:"debugLines,omitempty"`
}
