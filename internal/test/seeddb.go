// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TNT-747/ebank/internal/accountrepo"
	"github.com/TNT-747/ebank/internal/clientrepo"
	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/internal/entryrepo"
	"github.com/TNT-747/ebank/pkg/dbpkg"
	"github.com/TNT-747/ebank/pkg/passpkg"
	"github.com/TNT-747/ebank/pkg/randompkg"
)

// SeedClient creates a random Client inside a test transaction.
func SeedClient(t *testing.T, tx dbpkg.SQLInterface) domain.Client {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.Password(10))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.Password(10)) returned error: %v", err)
	}

	firstName := randompkg.Owner()
	arg := domain.CreateClientParams{
		FirstName:      firstName,
		LastName:       randompkg.Owner(),
		IdentityNumber: randompkg.IdentityNumber(),
		BirthDate:      time.Date(1985, time.June, 2, 0, 0, 0, 0, time.UTC),
		Email:          randompkg.Email(),
		Address:        randompkg.String(20),
		Username:       firstName + randompkg.Digits(4),
		HashedPassword: hashedPassword,
	}

	clientRepo := clientrepo.NewRepoPGS(tx)

	client, err := clientRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("clientRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return client
}

// SeedAccount creates an open Account with a zero balance inside a test
// transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, clientID int64) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.Create(context.Background(), randompkg.RIB(), clientID)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), rib, %v) returned error: %v", clientID, err)
	}

	return account
}

// SeedAccountWith creates an Account inside a test transaction and then
// sets its balance and status.
func SeedAccountWith(t *testing.T, tx dbpkg.SQLInterface, clientID int64, balance decimal.Decimal, status domain.AccountStatus) domain.Account {
	t.Helper()

	account := SeedAccount(t, tx, clientID)
	account.Balance = balance
	account.Status = status

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.Save(context.Background(), account)
	if err != nil {
		t.Fatalf("accountRepo.Save(context.Background(), %+v) returned error: %v", account, err)
	}

	return account
}

// SeedEntry creates an Entry inside a test transaction.
func SeedEntry(t *testing.T, tx dbpkg.SQLInterface, accountID int64, entryType domain.EntryType, amount decimal.Decimal) domain.Entry {
	t.Helper()

	arg := domain.CreateEntryParams{
		AccountID: accountID,
		Type:      entryType,
		Amount:    amount,
		Label:     randompkg.String(20),
		CreatedAt: time.Now().Truncate(time.Microsecond).UTC(),
	}

	entryRepo := entryrepo.NewRepoPGS(tx)

	entry, err := entryRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("entryRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return entry
}

// SeedEntries creates credit Entries with random amounts inside a test
// transaction.
func SeedEntries(t *testing.T, tx dbpkg.SQLInterface, count int, accountID int64) []domain.Entry {
	t.Helper()

	entries := make([]domain.Entry, count)

	for i := range entries {
		entries[i] = SeedEntry(t, tx, accountID, domain.EntryCredit, randompkg.MoneyAmountBetween(10, 1000))
	}

	return entries
}
