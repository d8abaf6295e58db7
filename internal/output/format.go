package output

import (
	"strconv"

	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as dollars
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercent formats a unit fraction as a percentage
func FormatPercent(fraction decimal.Decimal) string {
	return fraction.Mul(decimalHundred).StringFixed(1) + "%"
}

// FormatMonths renders a month count as "Ny Mm".
func FormatMonths(months int) string {
	years := months / 12
	rem := months % 12
	switch {
	case years == 0:
		return strconv.Itoa(rem) + "m"
	case rem == 0:
		return strconv.Itoa(years) + "y"
	}
	return strconv.Itoa(years) + "y " + strconv.Itoa(rem) + "m"
}

func intToString(n int) string {
	return strconv.Itoa(n)
}
