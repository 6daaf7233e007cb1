package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-lens/internal/models"
)

// MaxDeltas caps the category and merchant delta lists of a Comparison.
const MaxDeltas = 10

// Compare sets statement A against statement B. Every delta is B minus A.
func Compare(a, b []models.Transaction) models.Comparison {
	sa, sb := Summarize(a), Summarize(b)
	return CompareSummaries(sa, sb)
}

// CompareSummaries is Compare for summaries that are already computed.
func CompareSummaries(a, b models.Summary) models.Comparison {
	ta, tb := Totals(a), Totals(b)
	return models.Comparison{
		A: a,
		B: b,
		Delta: models.Totals{
			Spent:     tb.Spent.Sub(ta.Spent),
			Income:    tb.Income.Sub(ta.Income),
			Net:       tb.Net.Sub(ta.Net),
			Transfers: tb.Transfers.Sub(ta.Transfers),
		},
		Categories: namedDeltas(a.Categories, b.Categories),
		Merchants:  namedDeltas(a.Merchants, b.Merchants),
	}
}

// namedDeltas joins two breakdowns by name. Names missing on one side count
// as zero there. The result is ordered by absolute change, largest first;
// ties keep A's order followed by names new in B.
func namedDeltas(a, b []models.NamedAmount) []models.NamedDelta {
	amountsB := make(map[string]decimal.Decimal, len(b))
	for _, n := range b {
		amountsB[n.Name] = n.Amount
	}

	seen := make(map[string]bool, len(a)+len(b))
	out := make([]models.NamedDelta, 0, len(a)+len(b))
	for _, n := range a {
		seen[n.Name] = true
		vb, ok := amountsB[n.Name]
		if !ok {
			vb = decimal.Zero
		}
		out = append(out, models.NamedDelta{Name: n.Name, A: n.Amount, B: vb, Delta: vb.Sub(n.Amount)})
	}
	for _, n := range b {
		if seen[n.Name] {
			continue
		}
		seen[n.Name] = true
		out = append(out, models.NamedDelta{Name: n.Name, A: decimal.Zero, B: n.Amount, Delta: n.Amount})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Delta.Abs().GreaterThan(out[j].Delta.Abs())
	})
	if len(out) > MaxDeltas {
		out = out[:MaxDeltas]
	}
	return out
}
