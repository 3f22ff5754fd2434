package numword

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountEnglish(t *testing.T) {
	got := Amount(decimal.RequireFromString("240.38"), LocaleEnglish)
	assert.Equal(t, "two hundred forty dinars and thirty-eight centimes", got)
}

func TestAmountWholeNumberSkipsCentimes(t *testing.T) {
	got := Amount(decimal.RequireFromString("238"), LocaleEnglish)
	assert.Equal(t, "two hundred thirty-eight dinars", got)
}

func TestAmountFrench(t *testing.T) {
	got := Amount(decimal.RequireFromString("101.05"), LocaleFrench)
	assert.Equal(t, "cent un dinars et cinq centimes", got)
}

func TestAmountUnknownLocaleFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, Amount(decimal.RequireFromString("7"), "xx"),
		Amount(decimal.RequireFromString("7"), LocaleEnglish))
}

func TestAmountIdempotent(t *testing.T) {
	d := decimal.RequireFromString("99.99")
	assert.Equal(t, Amount(d, LocaleEnglish), Amount(d, LocaleEnglish))
}
