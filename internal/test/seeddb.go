// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"
	"time"

	"github.com/avelhart/duobank/internal/accountrepo"
	"github.com/avelhart/duobank/internal/domain"
	"github.com/avelhart/duobank/internal/sessionrepo"
	"github.com/avelhart/duobank/internal/userrepo"
	"github.com/avelhart/duobank/pkg/dbpkg"
	"github.com/avelhart/duobank/pkg/passpkg"
	"github.com/avelhart/duobank/pkg/randompkg"

	"github.com/google/uuid"
)

// SeedUser creates a random User inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(10)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Name:           randompkg.Name(),
		Email:          randompkg.Email(),
		HashedPassword: hashedPassword,
		MobileNumber:   "+4915112345678",
		Country:        "Germany",
	}

	userRepo := userrepo.NewRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount creates an account of the given type with zero balance inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, ownerID uuid.UUID, accountType domain.AccountType) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		OwnerID:       ownerID,
		AccountNumber: randompkg.AccountNumber(),
		Type:          accountType,
	}

	accountRepo := accountrepo.NewTxRepoPGS(tx)

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedAccountWithBalance creates an account of the given type and puts the
// given balance on it inside a test transaction.
func SeedAccountWithBalance(t *testing.T, tx dbpkg.SQLInterface, ownerID uuid.UUID, accountType domain.AccountType, balance int64) domain.Account {
	t.Helper()

	account := SeedAccount(t, tx, ownerID, accountType)

	accountRepo := accountrepo.NewTxRepoPGS(tx)

	affected, err := accountRepo.UpdateBalance(context.Background(), accountType, account.ID, balance)
	if err != nil {
		t.Fatalf("accountRepo.UpdateBalance(context.Background(), %v, %v, %v) returned error: %v",
			accountType, account.ID, balance, err)
	}

	if affected != 1 {
		t.Fatalf("accountRepo.UpdateBalance(context.Background(), %v, %v, %v) affected %v rows, want 1",
			accountType, account.ID, balance, affected)
	}

	account.Balance = balance

	return account
}

// SeedSession creates a session for the user inside a test transaction.
func SeedSession(t *testing.T, tx dbpkg.SQLInterface, userID uuid.UUID) domain.Session {
	t.Helper()

	arg := domain.CreateSessionParams{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: randompkg.String(10),
		UserAgent:    randompkg.String(10),
		ClientIP:     "127.0.0.1",
		ExpiresAt:    time.Now().Add(time.Hour).Truncate(time.Second).UTC(),
	}

	sessionRepo := sessionrepo.NewRepoPGS(tx)

	session, err := sessionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("sessionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return session
}
