package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var defaultCurrencyTag = language.MustParse("en-PH")

// FormatAmount renders an amount in Philippine pesos with locale-aware
// grouping and no decimal places. Formatting is presentation only; stored
// amounts stay raw numerics.
func FormatAmount(locale string, amount float64) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = defaultCurrencyTag
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("₱%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}
