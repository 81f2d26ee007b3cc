package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Account is an immutable balance snapshot. The zero Balance stands in for an
// absent balance, so Credit and Debit on a fresh account start from zero.
type Account struct {
	ID        string
	Balance   decimal.Decimal
	Currency  Currency
	UpdatedAt time.Time
}

func NewAccount(id string, balance decimal.Decimal, ccy Currency) Account {
	return Account{ID: id, Balance: balance, Currency: ccy}
}

// Credit returns a copy of a with amount added to its balance.
func (a Account) Credit(amount decimal.Decimal) Account {
	a.Balance = a.Balance.Add(amount)
	return a
}

// Debit returns a copy of a with amount subtracted from its balance. Negative
// results are allowed.
func (a Account) Debit(amount decimal.Decimal) Account {
	a.Balance = a.Balance.Sub(amount)
	return a
}

func (a Account) String() string {
	return fmt.Sprintf("%s: %s %s", a.ID, a.Balance.String(), a.Currency)
}
