package domain

import (
	"fmt"
	"strings"
)

// Currency is an ISO-style currency code. The rate and transfer logic treat
// it as an opaque key; ParseCurrency is only used at the service boundary.
type Currency string

func ParseCurrency(raw string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return "", fmt.Errorf("currency %q must be 3 characters", raw)
	}
	for _, ch := range code {
		if ch < 'A' || ch > 'Z' {
			return "", fmt.Errorf("currency %q must contain letters only", raw)
		}
	}

	return Currency(code), nil
}

func (c Currency) String() string {
	return string(c)
}
