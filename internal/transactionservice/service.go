// Package transactionservice manages business logic layer of balance mutations.
package transactionservice

import (
	"context"

	"github.com/avelhart/duobank/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	FindOne(ctx context.Context, t domain.AccountType, f domain.AccountFilter) (domain.Account, error)
	UpdateBalance(ctx context.Context, t domain.AccountType, id uuid.UUID, balance int64) (int64, error)
	TransferTx(ctx context.Context, sender, receiver domain.BalanceUpdate) error
}

// Service facilitates deposit, withdrawal and transfer logic.
type Service struct {
	repo Repo
}

// New returns transaction service struct to manage balance mutations.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// Deposit adds the amount to the caller's account and returns the updated account.
func (s *Service) Deposit(ctx context.Context, caller domain.AuthUser, accountType string, accountID uuid.UUID, amount int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var account domain.Account

	t, err := domain.ValidateAccountType(accountType)
	if err != nil {
		return account, err
	}

	if amount <= 0 {
		return account, domain.ErrInvalidAmount
	}

	account, err = s.repo.FindOne(ctx, t, domain.AccountFilter{ID: accountID, OwnerID: caller.ID})
	if err != nil {
		return domain.Account{}, err
	}

	affected, err := s.repo.UpdateBalance(ctx, t, account.ID, account.Balance+amount)
	if err != nil {
		return domain.Account{}, err
	}

	if affected == 0 {
		l.Warn().Str("account_id", account.ID.String()).Msg("deposit update affected no rows")
		return domain.Account{}, domain.ErrUpdateConflict
	}

	return s.repo.FindOne(ctx, t, domain.AccountFilter{ID: account.ID})
}

// Withdraw subtracts the amount from the caller's account and returns the
// updated account. A lookup miss is reported as an authorization failure:
// the caller either has no such account or no permission to touch it.
func (s *Service) Withdraw(ctx context.Context, caller domain.AuthUser, accountType string, accountID uuid.UUID, amount int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var account domain.Account

	t, err := domain.ValidateAccountType(accountType)
	if err != nil {
		return account, err
	}

	if amount <= 0 {
		return account, domain.ErrInvalidAmount
	}

	account, err = s.repo.FindOne(ctx, t, domain.AccountFilter{ID: accountID, OwnerID: caller.ID})
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return domain.Account{}, domain.ErrAccountAccessDenied
		}

		return domain.Account{}, err
	}

	if account.Balance < amount {
		return domain.Account{}, domain.ErrInsufficientFunds
	}

	affected, err := s.repo.UpdateBalance(ctx, t, account.ID, account.Balance-amount)
	if err != nil {
		return domain.Account{}, err
	}

	if affected == 0 {
		l.Warn().Str("account_id", account.ID.String()).Msg("withdraw update affected no rows")
		return domain.Account{}, domain.ErrUpdateConflict
	}

	return s.repo.FindOne(ctx, t, domain.AccountFilter{ID: account.ID})
}

// Transfer moves the amount from the caller's sender account to the receiver
// account addressed by its public account number. Both balance writes happen
// inside one atomic unit.
func (s *Service) Transfer(ctx context.Context, caller domain.AuthUser, arg domain.TransferParams) error {
	senderType, err := domain.ValidateAccountType(string(arg.Sender.Type))
	if err != nil {
		return err
	}

	receiverType, err := domain.ValidateAccountType(string(arg.Receiver.Type))
	if err != nil {
		return err
	}

	if arg.Amount <= 0 {
		return domain.ErrInvalidAmount
	}

	sender, err := s.repo.FindOne(ctx, senderType, domain.AccountFilter{
		ID:      arg.Sender.AccountID,
		OwnerID: caller.ID,
	})
	if err != nil && err != domain.ErrAccountNotFound {
		return err
	}

	senderFound := err == nil

	receiver, err := s.repo.FindOne(ctx, receiverType, domain.AccountFilter{
		AccountNumber: arg.Receiver.AccountNumber,
	})
	if err != nil && err != domain.ErrAccountNotFound {
		return err
	}

	receiverFound := err == nil

	// The guard compares the receiver against the caller's savings account
	// specifically, whatever the receiver's type is. Both sides are zero
	// uuids when absent, which also makes the comparison match then.
	if caller.SavingsAccountID == receiver.ID {
		return domain.ErrSelfTransfer
	}

	if !senderFound || !receiverFound {
		return domain.ErrAccountNotFound
	}

	if sender.Balance < arg.Amount {
		return domain.ErrInsufficientFunds
	}

	return s.repo.TransferTx(ctx,
		domain.BalanceUpdate{
			Type:      senderType,
			AccountID: sender.ID,
			Balance:   sender.Balance - arg.Amount,
		},
		domain.BalanceUpdate{
			Type:      receiverType,
			AccountID: receiver.ID,
			Balance:   receiver.Balance + arg.Amount,
		},
	)
}
