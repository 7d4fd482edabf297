package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"vendora/internal/domain"
)

var reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ID validates a simple resource identifier (product/vendor/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Q trims and caps a search query. A blank query is valid input; the
// query engine answers it with an empty result set.
func Q(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 64 {
		cut := 64
		// Never split a multi-byte rune at the cap.
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

// Price parses a non-negative decimal bound from a query parameter. An
// empty string means "no bound".
func Price(s string) (*decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil, false
	}
	return &d, true
}

// Address reports which required shipping fields are missing. The data
// layer itself never rejects an order; this runs in the shell before
// checkout is called.
func Address(a domain.ShippingAddress) []string {
	missing := []string{}
	check := func(field, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, field)
		}
	}
	check("name", a.Name)
	check("address", a.Address)
	check("city", a.City)
	check("postalCode", a.PostalCode)
	check("country", a.Country)
	return missing
}
