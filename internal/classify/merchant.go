package classify

import (
	"regexp"
	"strings"
)

// UnknownMerchant labels rows without a description.
const UnknownMerchant = "Unknown"

const maxMerchantLen = 26

type merchantRule struct {
	name     string
	patterns []*regexp.Regexp
}

var merchantRules = []merchantRule{
	{"Walmart", []*regexp.Regexp{regexp.MustCompile(`(?i)wal[- ]?mart`)}},
	{"Apple", []*regexp.Regexp{regexp.MustCompile(`(?i)apple\.com`), regexp.MustCompile(`(?i)\bapple\b`)}},
	{"DoorDash", []*regexp.Regexp{regexp.MustCompile(`(?i)doordash`), regexp.MustCompile(`(?i)\bdd/doordash`)}},
	{"Chegg", []*regexp.Regexp{regexp.MustCompile(`(?i)chegg`)}},
	{"Fido", []*regexp.Regexp{regexp.MustCompile(`(?i)fido`)}},
	{"Remitly", []*regexp.Regexp{regexp.MustCompile(`(?i)remitly`)}},
	{"Affirm", []*regexp.Regexp{regexp.MustCompile(`(?i)affirm`)}},
}

// Merchant maps a noisy description to a short, stable merchant label.
// Unmatched descriptions fall back to their first 26 characters.
func Merchant(description string) string {
	d := strings.TrimSpace(description)
	if d == "" {
		return UnknownMerchant
	}
	for _, r := range merchantRules {
		for _, p := range r.patterns {
			if p.MatchString(d) {
				return r.name
			}
		}
	}

	label := []rune(strings.Join(strings.Fields(d), " "))
	if len(label) > maxMerchantLen {
		label = label[:maxMerchantLen]
	}
	return string(label)
}
