package test

import (
	"time"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/pkg/randompkg"
)

// RandomAccount returns a random open account owned by the given client.
func RandomAccount(clientID int64) domain.Account {
	return domain.Account{
		ID:        randompkg.Intn(100) + 1,
		RIB:       randompkg.RIB(),
		Balance:   randompkg.MoneyAmountBetween(1000, 10_000),
		Status:    domain.StatusOpen,
		ClientID:  clientID,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomClient returns a random client.
func RandomClient() domain.Client {
	firstName := randompkg.Owner()

	return domain.Client{
		ID:             randompkg.Intn(100) + 1,
		FirstName:      firstName,
		LastName:       randompkg.Owner(),
		IdentityNumber: randompkg.IdentityNumber(),
		BirthDate:      time.Date(1990, time.March, 12, 0, 0, 0, 0, time.UTC),
		Email:          randompkg.Email(),
		Address:        randompkg.String(20),
		Username:       firstName,
		CreatedAt:      time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomEntry returns a random ledger entry against the given account.
func RandomEntry(accountID int64, entryType domain.EntryType) domain.Entry {
	return domain.Entry{
		ID:        randompkg.Intn(100) + 1,
		AccountID: accountID,
		Type:      entryType,
		Amount:    randompkg.MoneyAmountBetween(10, 1000),
		Label:     randompkg.String(20),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}
