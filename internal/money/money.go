// Package money formats numeric amounts in a document's currency.
package money

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// DefaultCurrency is used when a document does not name one.
const DefaultCurrency = "USD"

// Formatter renders amounts for one currency and locale.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
	pattern symbolPattern
}

// NewFormatter builds a formatter for an ISO 4217 code and a BCP 47 locale.
// Empty values fall back to USD and English.
func NewFormatter(code, locale string) (*Formatter, error) {
	if strings.TrimSpace(code) == "" {
		code = DefaultCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, proposaerrors.NewValidationError("currency", "unknown currency code "+code, err)
	}

	tag := language.English
	if strings.TrimSpace(locale) != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, proposaerrors.NewValidationError("locale", "unknown locale "+locale, err)
		}
		tag = parsed
	}

	return &Formatter{unit: unit, printer: message.NewPrinter(tag), pattern: patternFor(tag)}, nil
}

// MustFormatter is NewFormatter for known-good inputs. It panics on error.
func MustFormatter(code, locale string) *Formatter {
	f, err := NewFormatter(code, locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO currency code.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Symbol returns the localized currency symbol.
func (f *Formatter) Symbol() string {
	return f.printer.Sprint(currency.Symbol(f.unit))
}

// Format renders amount with the currency's standard number of decimals,
// placing the symbol where the locale does: "$1,500.00" in English,
// "1.500,00 €" in German.
func (f *Formatter) Format(amount float64) string {
	scale, _ := currency.Standard.Rounding(f.unit)
	return f.compose(amount, number.Scale(scale))
}

// FormatCompact drops trailing zero decimals, for headline prices.
func (f *Formatter) FormatCompact(amount float64) string {
	scale, _ := currency.Standard.Rounding(f.unit)
	return f.compose(amount, number.MaxFractionDigits(scale))
}

func (f *Formatter) compose(amount float64, opt number.Option) string {
	sign := ""
	if amount < 0 {
		sign, amount = "-", -amount
	}
	digits := f.printer.Sprint(number.Decimal(amount, opt))
	return sign + f.pattern.apply(f.Symbol(), digits)
}
