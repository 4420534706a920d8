package domain

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
	LocaleZH Locale = "zh"

	DefaultLocale = LocaleEN
)

func Locales() []Locale {
	return []Locale{LocaleEN, LocaleAR, LocaleZH}
}

func ParseLocale(s string) (Locale, bool) {
	switch l := Locale(s); l {
	case LocaleEN, LocaleAR, LocaleZH:
		return l, true
	}
	return "", false
}

// RTL reports whether the locale renders right-to-left.
func (l Locale) RTL() bool {
	return l == LocaleAR
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencySAR Currency = "SAR"
	CurrencyCNY Currency = "CNY"

	DefaultCurrency = CurrencyUSD
)

func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencySAR, CurrencyCNY}
}

func ParseCurrency(s string) (Currency, bool) {
	switch c := Currency(s); c {
	case CurrencyUSD, CurrencySAR, CurrencyCNY:
		return c, true
	}
	return "", false
}
