package money

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/locales"
	lcurrency "github.com/go-playground/locales/currency"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/es_DO"
	"github.com/go-playground/locales/es_ES"
	"github.com/go-playground/locales/es_MX"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/nl"
	"github.com/go-playground/locales/pl"
	"github.com/go-playground/locales/pt"
	"github.com/go-playground/locales/pt_BR"
	"github.com/go-playground/locales/sv"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// symbolPattern says where a locale writes the currency symbol and what
// separates it from the digits.
type symbolPattern struct {
	after bool
	space string
}

func (p symbolPattern) apply(symbol, digits string) string {
	if p.after {
		return digits + p.space + symbol
	}
	return symbol + p.space + digits
}

var (
	universalOnce sync.Once
	universal     *ut.UniversalTranslator
)

// translators lists the locales with CLDR currency patterns. Others use the
// English pattern.
func translators() *ut.UniversalTranslator {
	universalOnce.Do(func() {
		fallback := en.New()
		universal = ut.New(fallback,
			fallback, en_US.New(),
			es.New(), es_DO.New(), es_ES.New(), es_MX.New(),
			de.New(), fr.New(), it.New(), nl.New(),
			pt.New(), pt_BR.New(), sv.New(), pl.New(), ja.New(),
		)
	})
	return universal
}

func patternFor(tag language.Tag) symbolPattern {
	names := []string{strings.ReplaceAll(tag.String(), "-", "_")}
	if base, conf := tag.Base(); conf != language.No {
		names = append(names, base.String())
	}
	trans, _ := translators().FindTranslator(names...)
	return samplePattern(trans)
}

// samplePattern formats a known amount and reads the symbol position off the
// result. Only the side of the digits and the adjacent whitespace are used.
func samplePattern(t locales.Translator) symbolPattern {
	out := t.FmtCurrency(1, 2, lcurrency.EUR)
	first := strings.IndexFunc(out, unicode.IsDigit)
	last := strings.LastIndexFunc(out, unicode.IsDigit)
	if first < 0 {
		return symbolPattern{}
	}
	prefix, suffix := out[:first], out[last+1:]
	if strings.TrimSpace(prefix) != "" {
		return symbolPattern{space: prefix[len(strings.TrimRightFunc(prefix, unicode.IsSpace)):]}
	}
	if strings.TrimSpace(suffix) == "" {
		return symbolPattern{}
	}
	return symbolPattern{after: true, space: suffix[:len(suffix)-len(strings.TrimLeftFunc(suffix, unicode.IsSpace))]}
}
