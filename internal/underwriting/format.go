package underwriting

import (
	"fmt"
	"math"
	"strconv"
)

// FormatCurrency renders a dollar amount for factor strings: millions as
// $x.xxM, everything else as a comma-grouped whole figure.
func FormatCurrency(value float64) string {
	if math.Abs(value) >= 1_000_000 {
		return fmt.Sprintf("$%.2fM", value/1_000_000)
	}

	rounded := int64(math.Round(value))
	neg := rounded < 0
	if neg {
		rounded = -rounded
	}

	s := strconv.FormatInt(rounded, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}

	if neg {
		return "-$" + s
	}
	return "$" + s
}

func FormatPercent(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64) + "%"
}

func FormatMultiple(value float64) string {
	return fmt.Sprintf("%.2fx", value)
}
