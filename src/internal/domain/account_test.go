package domain_test

import (
	"testing"

	"github.com/api-sage/fx-transfer/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountCreditDebitDoNotMutate(t *testing.T) {
	original := domain.NewAccount("A", decimal.RequireFromString("1000.00"), "EUR")

	credited := original.Credit(decimal.RequireFromString("25.50"))
	debited := original.Debit(decimal.RequireFromString("1200"))

	assert.True(t, original.Balance.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, credited.Balance.Equal(decimal.RequireFromString("1025.50")))
	assert.True(t, debited.Balance.Equal(decimal.RequireFromString("-200")), "overdraft is allowed")
	assert.Equal(t, original.ID, credited.ID)
	assert.Equal(t, original.Currency, debited.Currency)
}

func TestAccountAbsentBalanceIsZero(t *testing.T) {
	var fresh domain.Account
	fresh.ID = "new"

	got := fresh.Credit(decimal.RequireFromString("12.34"))
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("12.34")))
}

func TestAccountDebitUndoesCredit(t *testing.T) {
	amounts := []string{"0", "0.0001", "203.34", "-17", "123456789.987654321"}
	account := domain.NewAccount("A", decimal.RequireFromString("1000.00"), "NOK")

	for _, raw := range amounts {
		amount := decimal.RequireFromString(raw)
		got := account.Credit(amount).Debit(amount)
		assert.True(t, got.Balance.Equal(account.Balance), "amount %s", raw)
		assert.Equal(t, account.ID, got.ID)
	}
}

func TestAccountString(t *testing.T) {
	account := domain.NewAccount("B", decimal.RequireFromString("1539.8"), "NOK")
	assert.Equal(t, "B: 1539.8 NOK", account.String())
}

func TestRateTableLookupUnknownCurrency(t *testing.T) {
	table := domain.RateTable{"USD": {Ask: decimal.NewFromInt(1), Bid: decimal.NewFromInt(1)}}

	q, err := table.Lookup("USD")
	assert.NoError(t, err)
	assert.Equal(t, domain.Currency("USD"), q.Currency)

	_, err = table.Lookup("XYZ")
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestParseCurrency(t *testing.T) {
	ccy, err := domain.ParseCurrency(" eur ")
	assert.NoError(t, err)
	assert.Equal(t, domain.Currency("EUR"), ccy)

	for _, raw := range []string{"", "EURO", "E1R"} {
		_, err := domain.ParseCurrency(raw)
		assert.Error(t, err, raw)
	}
}
