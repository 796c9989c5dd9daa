// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("compte non trouvé")
	// ErrRIBAlreadyExists indicates that an account with the given RIB already exists.
	ErrRIBAlreadyExists = errors.New("ce RIB existe déjà")
	// ErrInvalidRIB indicates that the RIB does not match the expected format.
	ErrInvalidRIB = errors.New("format de RIB invalide")
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

// All account statuses. An account is created OPEN and is never deleted,
// only blocked or closed.
const (
	StatusOpen    AccountStatus = "OPEN"
	StatusBlocked AccountStatus = "BLOCKED"
	StatusClosed  AccountStatus = "CLOSED"
)

// Account holds the balance of a single bank account identified by its RIB.
type Account struct {
	ID        int64           `json:"id"`
	RIB       string          `json:"rib"`
	Balance   decimal.Decimal `json:"balance"`
	Status    AccountStatus   `json:"status"`
	ClientID  int64           `json:"client_id"`
	CreatedAt time.Time       `json:"created_at"`
}
