package test

import (
	"time"

	"github.com/avelhart/duobank/internal/domain"
	"github.com/avelhart/duobank/pkg/randompkg"

	"github.com/google/uuid"
)

// RandomAccount returns a random account of the given type owned by the given owner.
func RandomAccount(ownerID uuid.UUID, accountType domain.AccountType) domain.Account {
	return domain.Account{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AccountNumber: randompkg.AccountNumber(),
		Type:          accountType,
		Balance:       randompkg.Amount(1_000, 10_000),
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}
}
