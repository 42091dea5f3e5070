package shared

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var supportedCurrencies = map[string]struct{}{
	"EUR": {}, "USD": {}, "GBP": {}, "JPY": {}, "CHF": {}, "CAD": {}, "AUD": {}, "CNY": {},
}

// Price is a non-negative amount of money in a supported currency.
type Price struct {
	amount   decimal.Decimal
	currency string
}

func NewPrice(amount decimal.Decimal, currency string) (Price, error) {
	if amount.IsNegative() {
		return Price{}, Validationf("price amount cannot be negative, got %s", amount)
	}
	if strings.TrimSpace(currency) == "" {
		return Price{}, Validationf("currency is required")
	}
	normalized := strings.ToUpper(strings.TrimSpace(currency))
	if len(normalized) != 3 {
		return Price{}, Validationf("currency must be a 3-letter ISO code, got %q", currency)
	}
	if _, ok := supportedCurrencies[normalized]; !ok {
		return Price{}, Validationf("currency %q is not supported, supported currencies: %s",
			normalized, strings.Join(currencyList(), ", "))
	}
	return Price{amount: amount, currency: normalized}, nil
}

// NewPriceFromString parses a decimal amount such as "18.90".
func NewPriceFromString(amount, currency string) (Price, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, Validationf("invalid price amount %q", amount)
	}
	return NewPrice(d, currency)
}

// ZeroEUR is the starting total of every order.
func ZeroEUR() Price {
	return Price{amount: decimal.Zero, currency: "EUR"}
}

func (p Price) Amount() decimal.Decimal { return p.amount }

func (p Price) Currency() string { return p.currency }

func (p Price) Add(other Price) (Price, error) {
	if p.currency != other.currency {
		return Price{}, Validationf("cannot add prices with different currencies: %s and %s",
			p.currency, other.currency)
	}
	return Price{amount: p.amount.Add(other.amount), currency: p.currency}, nil
}

func (p Price) Mul(quantity int) (Price, error) {
	if quantity <= 0 {
		return Price{}, Validationf("multiplier must be positive, got %d", quantity)
	}
	return Price{amount: p.amount.Mul(decimal.NewFromInt(int64(quantity))), currency: p.currency}, nil
}

func (p Price) Equal(other Price) bool {
	return p.currency == other.currency && p.amount.Equal(other.amount)
}

func (p Price) IsZero() bool { return p.amount.IsZero() }

func (p Price) String() string {
	return p.amount.StringFixed(2) + " " + p.currency
}

func currencyList() []string {
	out := make([]string, 0, len(supportedCurrencies))
	for c := range supportedCurrencies {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
