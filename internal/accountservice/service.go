// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/avelhart/duobank/internal/domain"
	"github.com/avelhart/duobank/pkg/errorspkg"
	"github.com/avelhart/duobank/pkg/randompkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxNumberAttempts caps account number generation retries on collisions.
const maxNumberAttempts = 5

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	FindOne(ctx context.Context, t domain.AccountType, f domain.AccountFilter) (domain.Account, error)
	FindMany(ctx context.Context, t domain.AccountType, f domain.AccountFilter) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates an account of the given type for the owner.
// An owner may hold at most one account of each type.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, accountType string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var account domain.Account

	t, err := domain.ValidateAccountType(accountType)
	if err != nil {
		return account, err
	}

	_, err = s.repo.FindOne(ctx, t, domain.AccountFilter{OwnerID: ownerID})
	if err == nil {
		return account, domain.ErrAccountTypeExists
	}

	if err != domain.ErrAccountNotFound {
		return account, err
	}

	for i := 0; i < maxNumberAttempts; i++ {
		number := randompkg.AccountNumber()

		_, err = s.repo.FindOne(ctx, t, domain.AccountFilter{AccountNumber: number})
		if err == nil {
			continue
		}

		if err != domain.ErrAccountNotFound {
			return account, err
		}

		account, err = s.repo.Create(ctx, domain.CreateAccountParams{
			OwnerID:       ownerID,
			AccountNumber: number,
			Type:          t,
		})

		if err == domain.ErrAccountNumberTaken {
			continue
		}

		return account, err
	}

	l.Error().Msg("account number generation exhausted retries")

	return account, errorspkg.ErrInternal
}

// Get returns the caller's account with the given type and id.
func (s *Service) Get(ctx context.Context, accountType string, accountID uuid.UUID, caller domain.AuthUser) (domain.Account, error) {
	var account domain.Account

	t, err := domain.ValidateAccountType(accountType)
	if err != nil {
		return account, err
	}

	account, err = s.repo.FindOne(ctx, t, domain.AccountFilter{ID: accountID})
	if err != nil {
		return domain.Account{}, err
	}

	if account.OwnerID != caller.ID {
		return domain.Account{}, domain.ErrAccountAccessDenied
	}

	return account, nil
}

// List returns all accounts of the given type owned by the given user.
// An owner without accounts of the type is reported as an error, not as
// an empty result.
func (s *Service) List(ctx context.Context, accountType string, ownerID uuid.UUID) ([]domain.Account, error) {
	t, err := domain.ValidateAccountType(accountType)
	if err != nil {
		return nil, err
	}

	accounts, err := s.repo.FindMany(ctx, t, domain.AccountFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return nil, domain.ErrNoAccountsFound
	}

	return accounts, nil
}
