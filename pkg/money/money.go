// Package money formats integer Colombian peso amounts for terminal tables.
// Amounts carry no decimals, so formatting is purely a grouping concern.
package money

import "strconv"

// Format renders an amount as "$ 31.000" with dot thousand separators.
func Format(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	prefix := "$ "
	if negative {
		prefix = "-$ "
	}
	return prefix + string(out)
}
