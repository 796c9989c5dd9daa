package domain

import "github.com/shopspring/decimal"

// Dashboard aggregates the read-side view of one client: all accounts,
// the selected account with its most recent entries, and the total balance
// across every account.
type Dashboard struct {
	SelectedAccount    *Account        `json:"account,omitempty"`
	RecentTransactions []Entry         `json:"recent_transactions,omitempty"`
	AllAccounts        []Account       `json:"all_accounts"`
	TotalBalance       decimal.Decimal `json:"total_balance"`
}
