package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrSourceAccountNotFound indicates that the source RIB resolves to no account.
	ErrSourceAccountNotFound = errors.New("compte source non trouvé")
	// ErrDestinationAccountNotFound indicates that the destination RIB resolves to no account.
	ErrDestinationAccountNotFound = errors.New("compte destinataire non trouvé")
	// ErrSourceAccountBlocked indicates that the source account is blocked or closed.
	ErrSourceAccountBlocked = errors.New("le compte bancaire est bloqué ou clôturé")
	// ErrDestinationAccountBlocked indicates that the destination account is blocked or closed.
	ErrDestinationAccountBlocked = errors.New("le compte destinataire est bloqué ou clôturé")
	// ErrInvalidAmount indicates a non-positive or malformed amount.
	ErrInvalidAmount = errors.New("le montant du virement doit être positif")
	// ErrInsufficientFunds indicates that the source balance is less than the amount.
	ErrInsufficientFunds = errors.New("le solde de compte doit être supérieur au montant du virement")
	// ErrSameAccountTransfer indicates that source and destination are the same account.
	ErrSameAccountTransfer = errors.New("impossible d'effectuer un virement vers le même compte")
	// ErrTransferBusy indicates lock contention exceeded the timeout; the caller may retry.
	ErrTransferBusy = errors.New("virement temporairement impossible, veuillez réessayer")
)

// CreateTransferParams is the input data for one transfer execution.
// It is ephemeral and never persisted.
type CreateTransferParams struct {
	SourceRIB      string          `json:"source_rib"`
	DestinationRIB string          `json:"destination_rib"`
	Amount         decimal.Decimal `json:"amount"` // must be positive
	Motif          string          `json:"motif"`
}

// TransferTxParams carries the resolved accounts and prebuilt audit labels
// into the atomic transfer transaction.
type TransferTxParams struct {
	SourceID      int64
	DestinationID int64
	Amount        decimal.Decimal
	DebitLabel    string
	CreditLabel   string
	CreatedAt     time.Time
}

// TransferTxResult is the committed outcome of one transfer: both accounts
// with their new balances and the matching pair of ledger entries.
type TransferTxResult struct {
	SourceAccount      Account `json:"source_account"`
	DestinationAccount Account `json:"destination_account"`
	DebitEntry         Entry   `json:"debit_entry"`
	CreditEntry        Entry   `json:"credit_entry"`
}
