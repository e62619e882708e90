package pmarket

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCents formats a price in cents, e.g. "42¢".
func FormatCents(price uint8) string {
	return strconv.Itoa(int(price)) + "¢"
}

// FormatBin formats an order book level as "<count>x <price>¢".
func FormatBin(bin PriceBin) string {
	return strconv.FormatUint(uint64(bin.Count), 10) + "x " + FormatCents(bin.Price)
}

// FormatBalance formats a balance in cents as dollars with thousand
// separators, e.g. 131700 -> "$1,317.00".
func FormatBalance(cents uint32) string {
	dollars := decimal.New(int64(cents), -2).StringFixed(2)
	whole, frac, _ := strings.Cut(dollars, ".")
	return "$" + groupThousands(whole) + "." + frac
}

// groupThousands inserts comma separators into a string of digits.
func groupThousands(str string) string {
	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	remainder := n % 3
	if remainder > 0 {
		result.WriteString(str[:remainder])
		if n > remainder {
			result.WriteString(",")
		}
	}

	for i := remainder; i < n; i += 3 {
		result.WriteString(str[i : i+3])
		if i+3 < n {
			result.WriteString(",")
		}
	}

	return result.String()
}
