package money

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

func TestFormatUSD(t *testing.T) {
	f, err := NewFormatter("USD", "en")
	require.NoError(t, err)

	assert.Equal(t, "USD", f.Code())
	assert.Contains(t, f.Symbol(), "$")

	out := f.Format(1500)
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "$")

	assert.NotContains(t, f.FormatCompact(50), ".")
}

func TestFormatPlacesSymbolPerLocale(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		locale   string
		amount   float64
		expected string
	}{
		{name: "english prefix", code: "USD", locale: "en", amount: 1500, expected: "$1,500.00"},
		{name: "german suffix", code: "EUR", locale: "de", amount: 1500, expected: "1.500,00\u00a0€"},
		{name: "region falls back to language", code: "EUR", locale: "de-DE", amount: 1500, expected: "1.500,00\u00a0€"},
		{name: "french suffix", code: "EUR", locale: "fr", amount: 2, expected: "2,00\u00a0€"},
		{name: "negative", code: "USD", locale: "en", amount: -20, expected: "-$20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter(tt.code, tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.Format(tt.amount))
		})
	}
}

func TestFormatUnlistedLocaleUsesEnglishPattern(t *testing.T) {
	f := MustFormatter("USD", "sw")
	assert.True(t, strings.HasPrefix(f.Format(3), f.Symbol()))
}

func TestFormatCompactKeepsLocalePattern(t *testing.T) {
	f := MustFormatter("EUR", "de")
	assert.Equal(t, "15.000\u00a0€", f.FormatCompact(15000))
}

func TestFormatDefaultsToUSD(t *testing.T) {
	f, err := NewFormatter("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, f.Code())
}

func TestFormatUsesCurrencyScale(t *testing.T) {
	f := MustFormatter("JPY", "en")
	assert.NotContains(t, f.Format(1200), ".")
}

func TestNewFormatterRejectsUnknownCurrency(t *testing.T) {
	_, err := NewFormatter("ZZZZ", "en")
	require.Error(t, err)
	assert.True(t, proposaerrors.IsValidation(err))

	_, err = NewFormatter("EUR", "not a locale!")
	require.Error(t, err)
	assert.True(t, proposaerrors.IsValidation(err))
}

func TestMustFormatterPanics(t *testing.T) {
	assert.Panics(t, func() { MustFormatter("??", "") })
}
