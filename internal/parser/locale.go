package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/cs"
	"github.com/go-playground/locales/da"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/de_AT"
	"github.com/go-playground/locales/de_CH"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fi"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/fr_CH"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/nb"
	"github.com/go-playground/locales/nl"
	"github.com/go-playground/locales/pl"
	"github.com/go-playground/locales/pt"
	"github.com/go-playground/locales/pt_BR"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/sv"
)

const DefaultLocale = "en"

// NumberLocale holds the separators used to read amounts.
type NumberLocale struct {
	Name    string
	Decimal string
	Group   string
}

var translators = map[string]func() locales.Translator{
	"cs":    cs.New,
	"da":    da.New,
	"de":    de.New,
	"de_AT": de_AT.New,
	"de_CH": de_CH.New,
	"en":    en.New,
	"en_GB": en_GB.New,
	"en_US": en_US.New,
	"es":    es.New,
	"fi":    fi.New,
	"fr":    fr.New,
	"fr_CH": fr_CH.New,
	"it":    it.New,
	"nb":    nb.New,
	"nl":    nl.New,
	"pl":    pl.New,
	"pt":    pt.New,
	"pt_BR": pt_BR.New,
	"ru":    ru.New,
	"sv":    sv.New,
}

// separators is implemented by every generated translator but is not part of
// locales.Translator.
type separators interface {
	Decimal() string
	Group() string
}

type UnknownLocaleError struct {
	Name string
}

func (e *UnknownLocaleError) Error() string {
	return fmt.Sprintf("unknown number locale %q (supported: %s)", e.Name, strings.Join(SupportedLocales(), ", "))
}

// LookupLocale resolves a locale identifier. An empty name selects
// DefaultLocale; "de-CH" and "de_CH" are equivalent.
func LookupLocale(name string) (NumberLocale, error) {
	key := strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
	if key == "" {
		key = DefaultLocale
	}
	newTranslator, ok := translators[key]
	if !ok {
		return NumberLocale{}, &UnknownLocaleError{Name: name}
	}
	sep, ok := newTranslator().(separators)
	if !ok {
		return NumberLocale{}, &UnknownLocaleError{Name: name}
	}
	return NumberLocale{
		Name:    key,
		Decimal: sep.Decimal(),
		Group:   sep.Group(),
	}, nil
}

func SupportedLocales() []string {
	names := make([]string, 0, len(translators))
	for name := range translators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
