package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fatoora/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeLine(t *testing.T) {
	// price=100, qty=2, rate=19 → subtotal=200, tax=38, total=238
	line, err := ComputeLine(dec("100"), 2, 19)
	require.NoError(t, err)
	assert.True(t, line.Subtotal.Equal(dec("200")), "subtotal=%s", line.Subtotal)
	assert.True(t, line.Tax.Equal(dec("38")), "tax=%s", line.Tax)
	assert.True(t, line.Total.Equal(dec("238")), "total=%s", line.Total)
}

func TestComputeLineZeroRate(t *testing.T) {
	line, err := ComputeLine(dec("59.99"), 3, 0)
	require.NoError(t, err)
	assert.True(t, line.Tax.IsZero())
	assert.True(t, line.Total.Equal(line.Subtotal))
}

func TestComputeLineRoundsTaxToCentimes(t *testing.T) {
	// 10.99 × 1 × 9% = 0.9891 → 0.99
	line, err := ComputeLine(dec("10.99"), 1, 9)
	require.NoError(t, err)
	assert.True(t, line.Tax.Equal(dec("0.99")), "tax=%s", line.Tax)
	assert.True(t, line.Total.Equal(dec("11.98")), "total=%s", line.Total)
}

func TestComputeLineFormula(t *testing.T) {
	// lineTotal = p×q×(1+r/100) for values that need no rounding
	cases := []struct {
		price string
		qty   int
		rate  int
		total string
	}{
		{"100", 1, 19, "119"},
		{"100", 1, 9, "109"},
		{"50", 4, 19, "238"},
		{"12.50", 2, 0, "25"},
	}
	for _, tc := range cases {
		line, err := ComputeLine(dec(tc.price), tc.qty, tc.rate)
		require.NoError(t, err)
		assert.True(t, line.Total.Equal(dec(tc.total)),
			"p=%s q=%d r=%d: got %s want %s", tc.price, tc.qty, tc.rate, line.Total, tc.total)
	}
}

func TestComputeLineRejectsInvalidInput(t *testing.T) {
	_, err := ComputeLine(dec("-1"), 1, 19)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeLine(dec("10"), 0, 19)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeLine(dec("10"), -3, 19)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeLine(dec("10"), 1, 20)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStampDutyCashOnly(t *testing.T) {
	// 238 × 1% = 2.38 when cash
	duty := StampDuty(dec("238"), model.PaymentCash)
	assert.True(t, duty.Equal(dec("2.38")), "duty=%s", duty)

	assert.True(t, StampDuty(dec("238"), model.PaymentCheck).IsZero())
	assert.True(t, StampDuty(dec("238"), model.PaymentBankTransfer).IsZero())
}

func TestStampDutyRounds(t *testing.T) {
	// 123.45 × 1% = 1.2345 → 1.23
	duty := StampDuty(dec("123.45"), model.PaymentCash)
	assert.True(t, duty.Equal(dec("1.23")), "duty=%s", duty)
}
