package rollup

import (
	"fmt"
	"strings"
)

// Missing is the placeholder rendered for unreported values.
const Missing = "—"

// FormatMoney renders a dollar amount with thousands grouping and no
// decimals: 1234567 → "$1,234,567".
func FormatMoney(v *float64) string {
	if v == nil {
		return Missing
	}
	return "$" + groupDigits(fmt.Sprintf("%.0f", *v))
}

// FormatInt renders an integer with thousands grouping.
func FormatInt(v *int) string {
	if v == nil {
		return Missing
	}
	return groupDigits(fmt.Sprintf("%d", *v))
}

// FormatPrice renders a dollar amount with cents: 234.912 → "$234.91".
func FormatPrice(v *float64) string {
	if v == nil {
		return Missing
	}
	s := fmt.Sprintf("%.2f", *v)
	if i := strings.Index(s, "."); i >= 0 {
		return "$" + groupDigits(s[:i]) + s[i:]
	}
	return "$" + groupDigits(s)
}

// groupDigits inserts comma separators into a plain digit string.
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
