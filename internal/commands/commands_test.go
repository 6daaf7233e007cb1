package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-lens/internal/models"
)

const (
	csvStatement = "Date,Description,Withdrawals,Deposits,Balance\n" +
		"8 Dec,ACME PAYROLL,,1200.00,5400.00\n" +
		"9 Dec,TIM HORTONS,4.50,,5395.50\n"
	incomeOnly = "Date,Description,Withdrawals,Deposits,Balance\n8 Dec,ACME PAYROLL,,1200.00,5400.00\n"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse_Stdout(t *testing.T) {
	path := writeFile(t, "export.csv", csvStatement)

	out, stderr, err := run(t, "parse", path, "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "# Source,export.csv")
	assert.Contains(t, out, "Date,Description,Merchant,Type,Category,Withdrawal,Deposit,Balance")
	assert.Contains(t, out, "9 Dec,TIM HORTONS,TIM HORTONS,spend,Other,4.50,,5395.50")
	assert.Contains(t, stderr, "csv, 2 transaction(s)")
}

func TestParse_DefaultOutputPath(t *testing.T) {
	path := writeFile(t, "statement.txt", "8Dec PAYROLL CO 1,200.00 5,400.00 9Dec TIM HORTONS 4.50 5,395.50")

	_, _, err := run(t, "parse", path, "--no-header")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "statement.csv"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "# Format")
	assert.Contains(t, string(data), "TIM HORTONS")
}

func TestParse_CSVInputGetsDistinctOutput(t *testing.T) {
	path := writeFile(t, "export.csv", csvStatement)

	_, _, err := run(t, "parse", path)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(filepath.Dir(path), "export.normalized.csv"))
	assert.NoError(t, err)

	original, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, csvStatement, string(original), "input must not be overwritten")
}

func TestParse_Debug(t *testing.T) {
	path := writeFile(t, "export.csv", csvStatement+",,,9.99,\n")

	_, stderr, err := run(t, "parse", path, "-o", "-", "--debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "header")
	assert.Contains(t, stderr, "skipped")
}

func TestParse_Errors(t *testing.T) {
	path := writeFile(t, "export.csv", csvStatement)

	_, _, err := run(t, "parse", path, "--format", "xlsx")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = run(t, "parse", path, path, "-o", "out.csv")
	assert.ErrorContains(t, err, "single input")

	_, _, err = run(t, "parse", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, _, err = run(t, "parse")
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	path := writeFile(t, "export.csv", csvStatement)

	out, _, err := run(t, "summary", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 transaction(s)")
	assert.Contains(t, out, "$4.50")
	assert.Contains(t, out, "$1200.00")
	assert.Regexp(t, `Net\s+\$1195\.50`, out)
	assert.Contains(t, out, "TIM HORTONS")
	assert.Contains(t, out, "$0–$25")
}

func TestSummary_JSON(t *testing.T) {
	path := writeFile(t, "export.csv", csvStatement)

	out, _, err := run(t, "summary", path, "--json")
	require.NoError(t, err)

	var s models.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.True(t, s.Net.Equal(decimal.RequireFromString("1195.50")))
	assert.Equal(t, 1, s.Histogram.TotalCount)
}

func TestCompare(t *testing.T) {
	a := writeFile(t, "a.csv", csvStatement)
	b := writeFile(t, "b.csv", incomeOnly)

	out, _, err := run(t, "compare", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "Spent")
	assert.Contains(t, out, "-$4.50")
	assert.Contains(t, out, "Categories")

	out, _, err = run(t, "compare", a, b, "--json")
	require.NoError(t, err)
	var cmp models.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.True(t, cmp.Delta.Net.Equal(decimal.RequireFromString("4.50")))
}

func TestChart(t *testing.T) {
	path := writeFile(t, "export.csv", csvStatement)
	png := filepath.Join(t.TempDir(), "hist.png")

	_, _, err := run(t, "chart", path, "--kind", "histogram", "-o", png)
	require.NoError(t, err)

	data, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))

	_, _, err = run(t, "chart", path, "--kind", "timeline")
	assert.ErrorContains(t, err, "unknown chart")

	_, _, err = run(t, "chart", writeFile(t, "income.csv", incomeOnly))
	assert.Error(t, err)
}

func TestCategorize(t *testing.T) {
	out, _, err := run(t, "categorize", "TIM", "HORTONS", "#2231")
	require.NoError(t, err)
	assert.Regexp(t, `Type\s+spend`, out)
	assert.Regexp(t, `Category\s+Other`, out)
	assert.Regexp(t, `Quick category\s+Food`, out)
	assert.Regexp(t, `Merchant\s+TIM HORTONS #2231`, out)
	assert.Regexp(t, `Credit\s+false`, out)
}
