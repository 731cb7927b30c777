// README: Money value type; decimal amount plus ISO 4217 currency.
package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NoCurrency is the ISO 4217 sentinel code for "no currency", carried by
// the Zero money value.
const NoCurrency = "XXX"

// Money is an immutable amount of a single currency. Compare with Equal,
// not ==.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// Zero is the canonical no-money value. It compares equal to any other
// zero-amount Money regardless of currency.
var Zero = Money{currency: NoCurrency}

// iso4217 is the recognized currency vocabulary. XXX is the standard's
// own "no currency" code and is therefore a valid member.
var iso4217 = map[string]struct{}{
	"AED": {}, "AUD": {}, "BRL": {}, "CAD": {}, "CHF": {}, "CLP": {},
	"CNY": {}, "COP": {}, "CZK": {}, "DKK": {}, "EUR": {}, "GBP": {},
	"HKD": {}, "HUF": {}, "IDR": {}, "ILS": {}, "INR": {}, "JPY": {},
	"KRW": {}, "MXN": {}, "MYR": {}, "NOK": {}, "NZD": {}, "PHP": {},
	"PLN": {}, "RON": {}, "SAR": {}, "SEK": {}, "SGD": {}, "THB": {},
	"TRY": {}, "TWD": {}, "USD": {}, "VND": {}, "XXX": {}, "ZAR": {},
}

// NewMoney validates the currency code (three letters, case-insensitive,
// normalized to uppercase, present in the ISO 4217 set) and returns the
// constructed value. Fails with ErrCurrencyFormat or ErrUnknownCurrency.
func NewMoney(amount decimal.Decimal, currencyCode string) (Money, error) {
	code := strings.ToUpper(currencyCode)
	if len(code) != 3 || !isLetters(code) {
		return Money{}, ErrCurrencyFormat
	}
	if _, ok := iso4217[code]; !ok {
		// the code is confirmed three letters, so echoing it is safe
		return Money{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return Money{amount: amount, currency: code}, nil
}

// USD is a convenience constructor for US dollar amounts.
func USD(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: "USD"}
}

// Amount is the arbitrary-precision decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency is the uppercase three-letter ISO 4217 code.
func (m Money) Currency() string { return m.currency }

func (m Money) IsZero() bool     { return m.amount.Sign() == 0 }
func (m Money) IsPositive() bool { return m.amount.Sign() > 0 }
func (m Money) IsNegative() bool { return m.amount.Sign() < 0 }

// Equal reports value equality: two zero amounts are equal regardless of
// currency; otherwise both amount and currency must match.
func (m Money) Equal(other Money) bool {
	if m.IsZero() && other.IsZero() {
		return true
	}
	return m.amount.Equal(other.amount) && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}

func isLetters(s string) bool {
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
