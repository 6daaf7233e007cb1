package summary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-lens/internal/models"
)

func TestCompare_Totals(t *testing.T) {
	a := []models.Transaction{income("1000"), spend("200", "Food", "DoorDash"), transfer("50", "0")}
	b := []models.Transaction{income("1200"), spend("150", "Food", "DoorDash"), spend("100", "Shopping", "Amazon")}

	c := Compare(a, b)

	assert.Equal(t, "50.00", c.Delta.Spent.StringFixed(2))
	assert.Equal(t, "200.00", c.Delta.Income.StringFixed(2))
	assert.Equal(t, "150.00", c.Delta.Net.StringFixed(2))
	assert.Equal(t, "-50.00", c.Delta.Transfers.StringFixed(2))

	assert.Equal(t, "800.00", c.A.Net.StringFixed(2))
	assert.Equal(t, "950.00", c.B.Net.StringFixed(2))
}

func TestCompare_NamedDeltas(t *testing.T) {
	a := []models.Transaction{
		spend("200", "Food", "DoorDash"),
		spend("40", "Groceries", "Walmart"),
		spend("15", "Education", "Chegg"),
	}
	b := []models.Transaction{
		spend("150", "Food", "DoorDash"),
		spend("40", "Groceries", "Walmart"),
		spend("100", "Shopping", "Amazon"),
	}

	c := Compare(a, b)
	require.Len(t, c.Categories, 4)

	// |delta|: Shopping 100, Food 50, Education 15, Groceries 0
	names := make([]string, len(c.Categories))
	for i, d := range c.Categories {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"Shopping", "Food", "Education", "Groceries"}, names)

	shopping := c.Categories[0]
	assert.True(t, shopping.A.IsZero())
	assert.Equal(t, "100.00", shopping.B.StringFixed(2))
	assert.Equal(t, "100.00", shopping.Delta.StringFixed(2))

	food := c.Categories[1]
	assert.Equal(t, "-50.00", food.Delta.StringFixed(2))

	education := c.Categories[2]
	assert.True(t, education.B.IsZero())
	assert.Equal(t, "-15.00", education.Delta.StringFixed(2))
}

func TestCompare_TopTen(t *testing.T) {
	var a, b []models.Transaction
	for i := 1; i <= 15; i++ {
		merchant := fmt.Sprintf("M%02d", i)
		a = append(a, spend("1", "Other", merchant))
		b = append(b, spend(fmt.Sprintf("%d", i+1), "Other", merchant))
	}

	c := Compare(a, b)
	require.Len(t, c.Merchants, MaxDeltas)
	assert.Equal(t, "M15", c.Merchants[0].Name)
	assert.Equal(t, "M06", c.Merchants[MaxDeltas-1].Name)
}

func TestCompare_Empty(t *testing.T) {
	c := Compare(nil, nil)
	assert.Empty(t, c.Categories)
	assert.Empty(t, c.Merchants)
	assert.True(t, c.Delta.Net.IsZero())
}

func TestCompareSummaries_DeltaOfTotals(t *testing.T) {
	a := Summarize([]models.Transaction{income("1000"), spend("200", "Food", "DoorDash"), transfer("50", "0")})
	b := Summarize([]models.Transaction{income("900"), spend("300", "Food", "DoorDash")})

	c := CompareSummaries(a, b)
	ta, tb := Totals(a), Totals(b)

	assert.True(t, c.Delta.Spent.Equal(tb.Spent.Sub(ta.Spent)))
	assert.True(t, c.Delta.Income.Equal(tb.Income.Sub(ta.Income)))
	assert.True(t, c.Delta.Net.Equal(tb.Net.Sub(ta.Net)))
	assert.True(t, c.Delta.Transfers.Equal(tb.Transfers.Sub(ta.Transfers)))
	assert.Equal(t, "-200.00", c.Delta.Net.StringFixed(2))
	assert.Equal(t, a, c.A)
	assert.Equal(t, b, c.B)
}
