package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tells whether an entry credits or debits its account.
type EntryType string

// All entry types.
const (
	EntryDebit  EntryType = "DEBIT"
	EntryCredit EntryType = "CREDIT"
)

// Entry is one immutable ledger record of a single-sided money movement
// against one account. Entries are append-only, never updated or deleted.
type Entry struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Type      EntryType       `json:"type"`
	Amount    decimal.Decimal `json:"amount"` // always positive
	Label     string          `json:"label"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateEntryParams is the input data to append one ledger entry.
// CreatedAt is supplied by the caller so that the two entries of one
// transfer share the same timestamp.
type CreateEntryParams struct {
	AccountID int64
	Type      EntryType
	Amount    decimal.Decimal
	Label     string
	CreatedAt time.Time
}
