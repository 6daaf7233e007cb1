package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-lens/internal/models"
)

func TestNew(t *testing.T) {
	tests := []struct {
		format models.Format
		want   Parser
	}{
		{models.FormatCSV, &DelimitedParser{}},
		{models.FormatText, &TextParser{}},
		{models.FormatPDF, &TextParser{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			p, err := New(tt.format)
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}

	_, err := New(models.Format("xlsx"))
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		want     models.Format
	}{
		{"pdf by extension", "statement.PDF", "", models.FormatPDF},
		{"pdf by magic", "upload", "%PDF-1.7\n...", models.FormatPDF},
		{"csv by extension", "export.csv", "anything", models.FormatCSV},
		{"text by extension", "notes.txt", "Date,Description,Amount\n", models.FormatText},
		{"csv by header", "upload", "Date,Description,Withdrawals,Deposits,Balance\n8 Dec,X,1.00,,2.00\n", models.FormatCSV},
		{"card csv by header", "", "\n\nTransaction Date,Merchant,Amount ($)\n", models.FormatCSV},
		{"header without money is text", "upload", "Date,Description\n", models.FormatText},
		{"statement text", "upload", "8Dec PAYROLL CO 1,200.00 5,400.00", models.FormatText},
		{"empty", "", "", models.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.filename, []byte(tt.content)))
		})
	}
}
