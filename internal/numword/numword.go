// Package numword spells out invoice totals for the printed document
// ("two hundred forty dinars and thirty-eight centimes"). The core treats
// this as an opaque formatting service; layout code should never parse the
// returned string.
package numword

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	ntw "moul.io/number-to-words"
)

const (
	LocaleEnglish = "en"
	LocaleFrench  = "fr"
)

var hundred = decimal.NewFromInt(100)

// Amount spells out a monetary amount in the given locale. Unknown locales
// fall back to English. Negative amounts are prefixed — they do not occur on
// invoices but the formatter should not produce garbage.
func Amount(amount decimal.Decimal, locale string) string {
	negative := amount.IsNegative()
	amount = amount.Abs().Round(2)

	units := amount.Truncate(0)
	centimes := amount.Sub(units).Mul(hundred).Round(0)

	toWords, and := ntw.IntegerToEnUs, "and"
	if locale == LocaleFrench {
		toWords, and = ntw.IntegerToFrFr, "et"
	}

	var b strings.Builder
	if negative {
		b.WriteString("- ")
	}
	fmt.Fprintf(&b, "%s dinars", toWords(int(units.IntPart())))
	if !centimes.IsZero() {
		fmt.Fprintf(&b, " %s %s centimes", and, toWords(int(centimes.IntPart())))
	}
	return b.String()
}
