// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidAccountType indicates an unknown account type string.
	ErrInvalidAccountType = errors.New("invalid account type")
	// ErrAccountTypeExists indicates that the owner already holds an account of the given type.
	ErrAccountTypeExists = errors.New("can only have one account with this type")
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAccessDenied indicates that the account does not belong to the caller.
	ErrAccountAccessDenied = errors.New("no permission to access this account")
	// ErrNoAccountsFound indicates that the owner holds no accounts of the given type.
	ErrNoAccountsFound = errors.New("no accounts found")
	// ErrAccountNumberTaken indicates a collision on the generated account number.
	ErrAccountNumberTaken = errors.New("account number already taken")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
)

// AccountType selects the partition that stores an account.
type AccountType string

// The two supported account types. Each type is backed by its own table.
const (
	Current AccountType = "CURRENT"
	Savings AccountType = "SAVINGS"
)

// ValidateAccountType checks the given type string against the supported types.
func ValidateAccountType(t string) (AccountType, error) {
	switch AccountType(t) {
	case Current:
		return Current, nil
	case Savings:
		return Savings, nil
	}

	return "", ErrInvalidAccountType
}

// Account holds balance data for one user and one account type.
// Balance is kept in the smallest currency unit and never goes negative.
type Account struct {
	ID            uuid.UUID   `json:"id"`
	OwnerID       uuid.UUID   `json:"owner_id"`
	AccountNumber int64       `json:"account_number"`
	Type          AccountType `json:"type"`
	Balance       int64       `json:"balance"`
	CreatedAt     time.Time   `json:"created_at"`
}

// AccountFilter is a conjunction of equality predicates used to resolve accounts.
// Zero values mean the field does not participate in the lookup.
type AccountFilter struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	AccountNumber int64
}

// CreateAccountParams is the input data to insert a new account row.
type CreateAccountParams struct {
	OwnerID       uuid.UUID
	AccountNumber int64
	Type          AccountType
}
