package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrInsufficientFunds indicates that the account does not have sufficient balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSelfTransfer indicates a transfer targeting the caller's own account.
	ErrSelfTransfer = errors.New("no permission to transfer to this account")
	// ErrUpdateConflict indicates that a balance update affected no rows.
	ErrUpdateConflict = errors.New("account update conflict")
	// ErrInvalidAmount indicates a non-positive transaction amount.
	ErrInvalidAmount = errors.New("invalid amount")
)

// TransferSender addresses the paying account by its internal id.
type TransferSender struct {
	AccountID uuid.UUID   `json:"account_id"`
	Type      AccountType `json:"type"`
}

// TransferReceiver addresses the receiving account by its public account number.
type TransferReceiver struct {
	AccountNumber int64       `json:"account_number"`
	Type          AccountType `json:"type"`
}

// TransferParams is the input data for the transfer transaction.
type TransferParams struct {
	Sender   TransferSender   `json:"sender"`
	Receiver TransferReceiver `json:"receiver"`
	Amount   int64            `json:"amount"`
}

// BalanceUpdate addresses one balance write inside the transfer atomic unit.
type BalanceUpdate struct {
	Type      AccountType
	AccountID uuid.UUID
	Balance   int64
}
