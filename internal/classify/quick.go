package classify

import "strings"

type categoryRule struct {
	keywords []string
	category string
}

// quickRules use their own vocabulary ("Grocery", "Bills") and are not kept
// in sync with rowRules.
var quickRules = []categoryRule{
	{[]string{"payroll"}, "Income"},
	{[]string{"online banking transfer", "online transfer", "e-transfer", "etransfer", "br to br", "transfer received"}, "Transfer"},
	{[]string{"walmart", "sobeys", "superstore", "costco"}, "Grocery"},
	{[]string{"tim", "tims", "starbucks", "mcdonald"}, "Food"},
	{[]string{"amazon", "apple.com", "winners", "h&m"}, "Shopping"},
	{[]string{"fido", "rogers", "bell", "netflix", "spotify"}, "Bills"},
}

// Categorize is the single-purpose category lookup used for quick labelling
// of a description. It is independent of Classify.
func Categorize(description string) string {
	d := strings.ToLower(description)
	for _, r := range quickRules {
		if containsAny(d, r.keywords) {
			return r.category
		}
	}
	return "Other"
}
