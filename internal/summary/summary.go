// Package summary derives totals, spend breakdowns and an amount histogram
// from a list of normalized transactions. Nothing here is stored; a Summary is
// recomputed whenever the transaction list changes.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-lens/internal/models"
)

type binEdge struct {
	label string
	lower int64
	upper int64 // 0 for the open-ended last bin
}

var binEdges = []binEdge{
	{"$0–$25", 0, 25},
	{"$25–$50", 25, 50},
	{"$50–$100", 50, 100},
	{"$100–$200", 100, 200},
	{"$200–$400", 200, 400},
	{"$400+", 400, 0},
}

// Summarize aggregates txns. Transfers are reported on their own and never
// count toward spent or income.
func Summarize(txns []models.Transaction) models.Summary {
	s := models.Summary{
		Spent:     decimal.Zero,
		Income:    decimal.Zero,
		Transfers: decimal.Zero,
		Histogram: newHistogram(),
	}

	categories := newGrouping()
	merchants := newGrouping()

	for _, t := range txns {
		switch t.Type {
		case models.TypeSpend:
			s.Spent = s.Spent.Add(t.Withdrawal)
			categories.add(t.Category, t.Withdrawal)
			merchants.add(t.Merchant, t.Withdrawal)
			if t.Withdrawal.IsPositive() {
				countAmount(&s.Histogram, t.Withdrawal)
			}
		case models.TypeIncome:
			s.Income = s.Income.Add(t.Deposit)
		case models.TypeTransfer:
			s.Transfers = s.Transfers.Add(t.Withdrawal).Add(t.Deposit)
		}
	}

	s.Net = s.Income.Sub(s.Spent)
	s.Categories = categories.sorted()
	s.Merchants = merchants.sorted()
	return s
}

// Totals returns the headline figures of s.
func Totals(s models.Summary) models.Totals {
	return models.Totals{
		Spent:     s.Spent,
		Income:    s.Income,
		Net:       s.Net,
		Transfers: s.Transfers,
	}
}

func newHistogram() models.Histogram {
	bins := make([]models.Bin, len(binEdges))
	for i, e := range binEdges {
		bins[i] = models.Bin{Label: e.label, Lower: decimal.NewFromInt(e.lower)}
		if e.upper > 0 {
			bins[i].Upper = decimal.NewNullDecimal(decimal.NewFromInt(e.upper))
		}
	}
	return models.Histogram{Bins: bins}
}

// countAmount adds one amount to its bin. Bins are half-open, so 25.00
// lands in $25–$50.
func countAmount(h *models.Histogram, amount decimal.Decimal) {
	i := len(h.Bins) - 1
	for j, b := range h.Bins {
		if b.Upper.Valid && amount.LessThan(b.Upper.Decimal) {
			i = j
			break
		}
	}
	h.Bins[i].Count++
	h.TotalCount++
}

// grouping sums amounts per name, remembering first-seen order so equal
// totals keep a stable order after sorting.
type grouping struct {
	index map[string]int
	items []models.NamedAmount
}

func newGrouping() *grouping {
	return &grouping{index: make(map[string]int)}
}

func (g *grouping) add(name string, amount decimal.Decimal) {
	i, ok := g.index[name]
	if !ok {
		i = len(g.items)
		g.index[name] = i
		g.items = append(g.items, models.NamedAmount{Name: name, Amount: decimal.Zero})
	}
	g.items[i].Amount = g.items[i].Amount.Add(amount)
}

// sorted returns the groups by amount, largest first.
func (g *grouping) sorted() []models.NamedAmount {
	out := make([]models.NamedAmount, len(g.items))
	copy(out, g.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}
