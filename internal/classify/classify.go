// Package classify assigns transaction types, categories and merchant labels
// from free-text statement descriptions. Every table here is an ordered rule
// chain: rules are tried top to bottom and the first match wins, so order
// decides ties.
package classify

import (
	"strings"

	"github.com/insightdelivered/statement-lens/internal/models"
)

// Result is the base verdict for a description.
type Result struct {
	Type     models.TxnType
	Category string
}

type rule struct {
	keywords []string
	result   Result
}

var rowRules = []rule{
	{
		keywords: []string{"transfer", "e-transfer", "etransfer", "br to br", "online banking transfer"},
		result:   Result{models.TypeTransfer, "Transfer"},
	},
	{
		keywords: []string{"payroll", "deposit", "received"},
		result:   Result{models.TypeIncome, "Income"},
	},
	{
		keywords: []string{"wal-mart", "walmart", "supercenter"},
		result:   Result{models.TypeSpend, "Groceries"},
	},
	{
		keywords: []string{"doordash", "uber", "skip"},
		result:   Result{models.TypeSpend, "Food"},
	},
	{
		keywords: []string{"chegg", "tuition", "university"},
		result:   Result{models.TypeSpend, "Education"},
	},
	{
		keywords: []string{"apple", "amazon", "best buy"},
		result:   Result{models.TypeSpend, "Shopping"},
	},
}

var defaultResult = Result{models.TypeSpend, "Other"}

// Classify returns the base type and category for a statement row.
func Classify(description string) Result {
	d := strings.ToLower(description)
	for _, r := range rowRules {
		if containsAny(d, r.keywords) {
			return r.result
		}
	}
	return defaultResult
}

// creditKeywords mark card rows whose positive amount is money coming back.
var creditKeywords = []string{"refund", "reversal", "return", "credit", "chargeback", "adj", "adjustment"}

// LooksLikeCredit reports whether an amount-only row is a refund or credit.
func LooksLikeCredit(description string) bool {
	return containsAny(strings.ToLower(description), creditKeywords)
}

var (
	depositHints    = []string{"payroll", "deposit", "received", "transfer received"}
	withdrawalHints = []string{"visa", "purchase", "debit", "payment", "affirm", "sent"}
)

// LooksLikeDeposit decides the direction of an unsigned amount recovered from
// plain statement text. Only a description with deposit hints and no
// withdrawal hints is a deposit; everything else, including ambiguous text,
// is treated as a withdrawal since card purchases dominate these exports.
func LooksLikeDeposit(description string) bool {
	d := strings.ToLower(description)
	return containsAny(d, depositHints) && !containsAny(d, withdrawalHints)
}

// Resolve forces the base type to agree with whichever money column is set.
// A transfer verdict survives in either direction.
func Resolve(base models.TxnType, withdrawal, deposit bool) models.TxnType {
	switch {
	case withdrawal && !deposit:
		if base == models.TypeTransfer {
			return models.TypeTransfer
		}
		return models.TypeSpend
	case deposit && !withdrawal:
		if base == models.TypeTransfer {
			return models.TypeTransfer
		}
		return models.TypeIncome
	}
	return base
}

// containsAny expects d to be lower-cased already.
func containsAny(d string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(d, k) {
			return true
		}
	}
	return false
}
