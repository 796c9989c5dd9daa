// Package dashboardservice assembles the read-side client dashboard.
package dashboardservice

import (
	"context"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/shopspring/decimal"
)

const recentEntries = 10

// AccountService provides account lookups needed by the dashboard.
//
//go:generate mockgen -source service.go -destination service_mock.go -package dashboardservice
type AccountService interface {
	ListByClient(ctx context.Context, clientID int64) ([]domain.Account, error)
}

// EntryService provides ledger lookups needed by the dashboard.
type EntryService interface {
	Top(ctx context.Context, accountID int64, n int32) ([]domain.Entry, error)
}

// Service facilitates dashboard service layer logic.
type Service struct {
	accounts AccountService
	entries  EntryService
}

// New returns dashboard service struct.
func New(as AccountService, es EntryService) *Service {
	return &Service{
		accounts: as,
		entries:  es,
	}
}

// Get returns the dashboard of the given client: all accounts, the selected
// account (or the first one when selectedAccountID is 0) with its most
// recent entries, and the total balance across every account.
func (s *Service) Get(ctx context.Context, clientID, selectedAccountID int64) (domain.Dashboard, error) {
	accounts, err := s.accounts.ListByClient(ctx, clientID)
	if err != nil {
		return domain.Dashboard{}, err
	}

	dashboard := domain.Dashboard{
		AllAccounts:  accounts,
		TotalBalance: decimal.Zero,
	}

	if len(accounts) == 0 {
		return dashboard, nil
	}

	for _, a := range accounts {
		dashboard.TotalBalance = dashboard.TotalBalance.Add(a.Balance)
	}

	selected := accounts[0]

	if selectedAccountID != 0 {
		for _, a := range accounts {
			if a.ID == selectedAccountID {
				selected = a
				break
			}
		}
	}

	recent, err := s.entries.Top(ctx, selected.ID, recentEntries)
	if err != nil {
		return domain.Dashboard{}, err
	}

	dashboard.SelectedAccount = &selected
	dashboard.RecentTransactions = recent

	return dashboard, nil
}
