package summary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-lens/internal/models"
)

func spend(amount, category, merchant string) models.Transaction {
	return models.Transaction{
		Withdrawal: decimal.RequireFromString(amount),
		Deposit:    decimal.Zero,
		Type:       models.TypeSpend,
		Category:   category,
		Merchant:   merchant,
	}
}

func income(amount string) models.Transaction {
	return models.Transaction{
		Withdrawal: decimal.Zero,
		Deposit:    decimal.RequireFromString(amount),
		Type:       models.TypeIncome,
		Category:   "Income",
		Merchant:   "ACME PAYROLL",
	}
}

func transfer(withdrawal, deposit string) models.Transaction {
	return models.Transaction{
		Withdrawal: decimal.RequireFromString(withdrawal),
		Deposit:    decimal.RequireFromString(deposit),
		Type:       models.TypeTransfer,
		Category:   "Transfer",
	}
}

func TestSummarize_Totals(t *testing.T) {
	txns := []models.Transaction{
		income("1200.00"),
		spend("45.10", "Groceries", "Walmart"),
		spend("4.50", "Other", "TIM HORTONS"),
		transfer("100.00", "0"),
		transfer("0", "50.00"),
	}

	s := Summarize(txns)
	assert.Equal(t, "49.60", s.Spent.StringFixed(2))
	assert.Equal(t, "1200.00", s.Income.StringFixed(2))
	assert.Equal(t, "1150.40", s.Net.StringFixed(2))
	assert.Equal(t, "150.00", s.Transfers.StringFixed(2))
}

func TestSummarize_TransfersNeverAffectNet(t *testing.T) {
	base := []models.Transaction{income("500"), spend("200", "Other", "X")}
	withTransfers := append(append([]models.Transaction{}, base...), transfer("1000", "0"), transfer("0", "3000"))

	assert.True(t, Summarize(base).Net.Equal(Summarize(withTransfers).Net))
	assert.Equal(t, "300.00", Summarize(withTransfers).Net.StringFixed(2))
}

func TestSummarize_Groupings(t *testing.T) {
	txns := []models.Transaction{
		spend("10.00", "Food", "DoorDash"),
		spend("30.00", "Shopping", "Amazon"),
		spend("20.00", "Food", "DoorDash"),
		spend("5.00", "Other", "Corner Store"),
		income("999.00"),
	}

	s := Summarize(txns)

	require.Len(t, s.Categories, 3)
	// Food and Shopping tie at 30; Food was seen first.
	assert.Equal(t, "Food", s.Categories[0].Name)
	assert.Equal(t, "30.00", s.Categories[0].Amount.StringFixed(2))
	assert.Equal(t, "Shopping", s.Categories[1].Name)
	assert.Equal(t, "Other", s.Categories[2].Name)

	require.Len(t, s.Merchants, 3)
	assert.Equal(t, "DoorDash", s.Merchants[0].Name)
	assert.Equal(t, "Amazon", s.Merchants[1].Name)
	assert.Equal(t, "Corner Store", s.Merchants[2].Name)

	for _, c := range s.Categories {
		assert.NotEqual(t, "Income", c.Name, "groupings only cover spend rows")
	}
}

func TestSummarize_Histogram(t *testing.T) {
	var txns []models.Transaction
	for _, a := range []string{"10", "25", "24.99", "400", "399.99"} {
		txns = append(txns, spend(a, "Other", "X"))
	}
	// Not counted: zero spend and non-spend rows.
	txns = append(txns, spend("0", "Other", "X"), income("30"), transfer("30", "0"))

	h := Summarize(txns).Histogram
	require.Len(t, h.Bins, 6)

	var counts []int
	for _, b := range h.Bins {
		counts = append(counts, b.Count)
	}
	assert.Equal(t, []int{2, 1, 0, 0, 1, 1}, counts)
	assert.Equal(t, 5, h.TotalCount)

	assert.Equal(t, "$25–$50", h.Bins[1].Label)
	assert.True(t, h.Bins[1].Lower.Equal(decimal.NewFromInt(25)))
	assert.True(t, h.Bins[1].Upper.Valid)
	assert.False(t, h.Bins[5].Upper.Valid)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.True(t, s.Spent.IsZero())
	assert.True(t, s.Income.IsZero())
	assert.True(t, s.Net.IsZero())
	assert.True(t, s.Transfers.IsZero())
	assert.NotNil(t, s.Categories)
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Merchants)

	require.Len(t, s.Histogram.Bins, 6)
	assert.Zero(t, s.Histogram.TotalCount)
	for _, b := range s.Histogram.Bins {
		assert.Zero(t, b.Count)
	}
}

func TestTotals(t *testing.T) {
	s := Summarize([]models.Transaction{income("10"), spend("4", "Other", "X")})
	tot := Totals(s)
	assert.True(t, tot.Net.Equal(decimal.NewFromInt(6)))
	assert.True(t, tot.Spent.Equal(s.Spent))
}
