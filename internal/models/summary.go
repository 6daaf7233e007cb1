package models

import "github.com/shopspring/decimal"

// NamedAmount is one row of a grouped breakdown (category or merchant).
type NamedAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Bin is one fixed histogram bucket. Upper is invalid for the open-ended last bucket.
type Bin struct {
	Label string              `json:"label"`
	Lower decimal.Decimal     `json:"lower"`
	Upper decimal.NullDecimal `json:"upper"`
	Count int                 `json:"count"`
}

// Histogram counts spend withdrawals per amount bucket.
type Histogram struct {
	Bins       []Bin `json:"bins"`
	TotalCount int   `json:"totalCount"`
}

// Summary is derived from a transaction list and never stored.
type Summary struct {
	Spent      decimal.Decimal `json:"spent"`
	Income     decimal.Decimal `json:"income"`
	Net        decimal.Decimal `json:"net"`
	Transfers  decimal.Decimal `json:"transfers"`
	Categories []NamedAmount   `json:"categories"`
	Merchants  []NamedAmount   `json:"merchants"`
	Histogram  Histogram       `json:"histogram"`
}

// Totals holds the headline figures of a Summary, used for A/B deltas.
type Totals struct {
	Spent     decimal.Decimal `json:"spent"`
	Income    decimal.Decimal `json:"income"`
	Net       decimal.Decimal `json:"net"`
	Transfers decimal.Decimal `json:"transfers"`
}

// NamedDelta compares one category or merchant across two statements.
type NamedDelta struct {
	Name  string          `json:"name"`
	A     decimal.Decimal `json:"a"`
	B     decimal.Decimal `json:"b"`
	Delta decimal.Decimal `json:"delta"` // B - A
}

// Comparison is the result of comparing statement A against statement B.
type Comparison struct {
	A          Summary      `json:"a"`
	B          Summary      `json:"b"`
	Delta      Totals       `json:"delta"`
	Categories []NamedDelta `json:"categories"`
	Merchants  []NamedDelta `json:"merchants"`
}
