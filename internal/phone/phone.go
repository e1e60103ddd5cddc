// Package phone holds the two phone canonicalizations used by the customer
// console. ComparisonKey produces the 7-leading grouping key for duplicate
// detection; DisplayForm produces the 8-leading form written back to a merged
// customer. They are intentionally separate rules and must stay separate:
// unifying them would change either dedup grouping or display output.
package phone

import "strings"

func digitsOnly(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ComparisonKey normalizes a raw phone string to the 7-leading digit form used
// to group candidate duplicates. Russian-specific: "89991234567" and
// "+7 999 123-45-67" both map to "79991234567". Anything that does not match
// the two Russian shapes comes back as its bare digit string.
func ComparisonKey(phone string) string {
	digits := digitsOnly(phone)

	if strings.HasPrefix(digits, "8") && len(digits) == 11 {
		return "7" + digits[1:]
	}

	if strings.HasPrefix(digits, "9") && len(digits) == 10 {
		return "7" + digits
	}

	return digits
}

// DisplayForm rewrites a phone into the 8-leading form the console displays,
// e.g. "79991234567" -> "89991234567". A number that fits none of the Russian
// shapes is returned exactly as entered, not digits-only.
func DisplayForm(phone string) string {
	digits := digitsOnly(phone)

	if strings.HasPrefix(digits, "7") && len(digits) == 11 {
		return "8" + digits[1:]
	}

	if strings.HasPrefix(digits, "9") && len(digits) == 10 {
		return "8" + digits
	}

	if strings.HasPrefix(digits, "8") && len(digits) == 11 {
		return digits
	}

	return phone
}
