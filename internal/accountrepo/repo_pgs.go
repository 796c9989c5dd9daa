// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/pkg/dbpkg"
	"github.com/TNT-747/ebank/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// lockNotAvailable is the Postgres error code returned when lock_timeout expires.
const lockNotAvailable = pq.ErrorCode("55P03")

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (rib, balance, status, client_id)
VALUES
    ($1, 0, 'OPEN', $2)
RETURNING id, rib, balance, status, client_id, created_at
`

// Create creates an OPEN account with zero balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, rib string, clientID int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, rib, clientID)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_rib_key":
				return a, domain.ErrRIBAlreadyExists
			case "accounts_client_id_fkey":
				return a, domain.ErrClientNotFound
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT id, rib, balance, status, client_id, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByRIBQuery = `
SELECT id, rib, balance, status, client_id, created_at
FROM accounts
WHERE rib = $1
`

// GetByRIB returns the account with the given RIB.
func (r *RepoPGS) GetByRIB(ctx context.Context, rib string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByRIBQuery, rib)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getForUpdateQuery = `
SELECT id, rib, balance, status, client_id, created_at
FROM accounts
WHERE id = $1
FOR UPDATE
`

// GetForUpdate returns the account with the given id after acquiring an
// exclusive row lock. The lock is held until the surrounding transaction
// ends; lock_timeout expiry surfaces as domain.ErrTransferBusy.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getForUpdateQuery, id)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == lockNotAvailable {
			return a, domain.ErrTransferBusy
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const existsQuery = `
SELECT EXISTS (SELECT 1 FROM accounts WHERE rib = $1)
`

// Exists reports whether an account with the given RIB exists.
func (r *RepoPGS) Exists(ctx context.Context, rib string) (bool, error) {
	l := zerolog.Ctx(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, existsQuery, rib).Scan(&exists); err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return exists, nil
}

const saveQuery = `
UPDATE accounts
SET balance = $2, status = $3, client_id = $4
WHERE id = $1
RETURNING id, rib, balance, status, client_id, created_at
`

// Save replaces the full stored record of the account with the caller
// supplied state. The RIB is immutable and never updated.
func (r *RepoPGS) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, saveQuery,
		account.ID,
		account.Balance,
		account.Status,
		account.ClientID,
	)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientFunds
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listByClientQuery = `
SELECT id, rib, balance, status, client_id, created_at
FROM accounts
WHERE client_id = $1
ORDER BY created_at DESC, id DESC
`

// ListByClient returns all accounts owned by the given client, newest first.
func (r *RepoPGS) ListByClient(ctx context.Context, clientID int64) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByClientQuery, clientID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.RIB, &a.Balance, &a.Status, &a.ClientID, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.RIB,
		&a.Balance,
		&a.Status,
		&a.ClientID,
		&a.CreatedAt,
	)

	return a, err
}
