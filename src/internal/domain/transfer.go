package domain

import "github.com/shopspring/decimal"

// TransferResult holds the post-transfer snapshots of both accounts. Neither
// snapshot shares state with the accounts the transfer was built from.
type TransferResult struct {
	Source Account
	Target Account
}

// TransferReceipt is what the service layer reports for an enacted transfer.
type TransferReceipt struct {
	Result          TransferResult
	SourceAmount    decimal.Decimal
	ConvertedAmount decimal.Decimal
	Rate            decimal.Decimal
}
