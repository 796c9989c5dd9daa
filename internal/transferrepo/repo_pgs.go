// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TNT-747/ebank/internal/accountrepo"
	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/internal/entryrepo"
	"github.com/TNT-747/ebank/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS executes transfer transactions against Postgres.
type RepoPGS struct {
	conn          *sql.DB
	lockTimeoutMS int64
}

// NewRepoPGS returns transfer RepoPGS. lockTimeoutMS bounds row lock
// acquisition inside the transfer transaction; on expiry the transfer
// fails with domain.ErrTransferBusy.
func NewRepoPGS(db *sql.DB, lockTimeoutMS int64) *RepoPGS {
	return &RepoPGS{
		conn:          db,
		lockTimeoutMS: lockTimeoutMS,
	}
}

// Transfer moves money between two accounts.
//
// Both balance mutations and both ledger entries are committed within a
// single database transaction. Row locks are acquired in ascending account
// id order, never in request order, so two transfers moving money in
// opposite directions between the same pair of accounts cannot deadlock.
// Status and balance are revalidated on the locked rows before mutating:
// a concurrent transfer may have invalidated the snapshot the caller
// validated against.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrStorageFailure
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeoutMS)); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrStorageFailure
	}

	accountRepo := accountrepo.NewRepoPGS(tx)
	entryRepo := entryrepo.NewRepoPGS(tx)

	source, destination, err := lockAccounts(ctx, accountRepo, arg.SourceID, arg.DestinationID)
	if err != nil {
		return result, err
	}

	// Revalidate on the locked snapshot.
	if source.Status != domain.StatusOpen {
		return result, domain.ErrSourceAccountBlocked
	}

	if destination.Status != domain.StatusOpen {
		return result, domain.ErrDestinationAccountBlocked
	}

	if source.Balance.LessThan(arg.Amount) {
		return result, domain.ErrInsufficientFunds
	}

	source.Balance = source.Balance.Sub(arg.Amount)

	result.SourceAccount, err = accountRepo.Save(ctx, source)
	if err != nil {
		return result, err
	}

	destination.Balance = destination.Balance.Add(arg.Amount)

	result.DestinationAccount, err = accountRepo.Save(ctx, destination)
	if err != nil {
		return result, err
	}

	result.DebitEntry, err = entryRepo.Create(ctx, domain.CreateEntryParams{
		AccountID: source.ID,
		Type:      domain.EntryDebit,
		Amount:    arg.Amount,
		Label:     arg.DebitLabel,
		CreatedAt: arg.CreatedAt,
	})
	if err != nil {
		return result, err
	}

	result.CreditEntry, err = entryRepo.Create(ctx, domain.CreateEntryParams{
		AccountID: destination.ID,
		Type:      domain.EntryCredit,
		Amount:    arg.Amount,
		Label:     arg.CreditLabel,
		CreatedAt: arg.CreatedAt,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, errorspkg.ErrStorageFailure
	}

	return result, nil
}

// lockAccounts acquires exclusive row locks on both accounts in ascending
// id order and returns them as (source, destination).
func lockAccounts(ctx context.Context, r *accountrepo.RepoPGS, sourceID, destinationID int64) (domain.Account, domain.Account, error) {
	firstID, secondID := sourceID, destinationID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := r.GetForUpdate(ctx, firstID)
	if err != nil {
		return domain.Account{}, domain.Account{}, mapLockErr(err, firstID == sourceID)
	}

	second, err := r.GetForUpdate(ctx, secondID)
	if err != nil {
		return domain.Account{}, domain.Account{}, mapLockErr(err, secondID == sourceID)
	}

	if first.ID == sourceID {
		return first, second, nil
	}

	return second, first, nil
}

func mapLockErr(err error, isSource bool) error {
	if errors.Is(err, domain.ErrAccountNotFound) {
		if isSource {
			return domain.ErrSourceAccountNotFound
		}

		return domain.ErrDestinationAccountNotFound
	}

	return err
}

// SumBalances returns the total of all account balances. It is used by the
// conservation tests: the sum is invariant across any sequence of committed
// transfers.
func (r *RepoPGS) SumBalances(ctx context.Context) (decimal.Decimal, error) {
	row := r.conn.QueryRowContext(ctx, "SELECT COALESCE(SUM(balance), 0) FROM accounts")

	var sum decimal.Decimal
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, errorspkg.ErrInternal
	}

	return sum, nil
}
