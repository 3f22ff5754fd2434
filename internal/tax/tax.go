// Package tax computes per-line VAT and the cash stamp-duty surcharge.
// Pure functions, decimal arithmetic, no side effects. Both invoice issuance
// and invoice reconstruction go through ComputeLine so the two can never
// disagree on rounding.
package tax

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"fatoora/internal/model"
)

// ErrInvalidInput is returned for out-of-range prices, quantities or rates.
var ErrInvalidInput = errors.New("tax: invalid input")

// stampDutyRate is the flat 1% surcharge on the tax-inclusive total,
// applied only when the invoice is settled in cash.
var stampDutyRate = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// Line is the monetary breakdown of one invoice line.
type Line struct {
	Subtotal decimal.Decimal // unit price × quantity
	Tax      decimal.Decimal // subtotal × rate/100, rounded to centimes
	Total    decimal.Decimal // subtotal + tax
}

// ValidRate reports whether ratePct is one of the legal VAT percentages.
func ValidRate(ratePct int) bool {
	return ratePct == 0 || ratePct == 9 || ratePct == 19
}

// ComputeLine computes the breakdown for quantity units at unitPrice with the
// given VAT percentage. Constraints: unitPrice ≥ 0, quantity ≥ 1,
// ratePct ∈ {0, 9, 19}.
func ComputeLine(unitPrice decimal.Decimal, quantity int, ratePct int) (Line, error) {
	if unitPrice.IsNegative() {
		return Line{}, fmt.Errorf("%w: negative unit price %s", ErrInvalidInput, unitPrice)
	}
	if quantity < 1 {
		return Line{}, fmt.Errorf("%w: quantity %d, must be at least 1", ErrInvalidInput, quantity)
	}
	if !ValidRate(ratePct) {
		return Line{}, fmt.Errorf("%w: tax rate %d%%, must be 0, 9 or 19", ErrInvalidInput, ratePct)
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	taxAmount := subtotal.Mul(decimal.NewFromInt(int64(ratePct))).Div(hundred).Round(2)
	return Line{
		Subtotal: subtotal,
		Tax:      taxAmount,
		Total:    subtotal.Add(taxAmount),
	}, nil
}

// StampDuty returns the stamp-duty surcharge for a tax-inclusive total:
// 1% when paying cash, zero for check and bank transfer.
func StampDuty(totalAfterTax decimal.Decimal, method model.PaymentMethod) decimal.Decimal {
	if method != model.PaymentCash {
		return decimal.Zero
	}
	return totalAfterTax.Mul(stampDutyRate).Round(2)
}
