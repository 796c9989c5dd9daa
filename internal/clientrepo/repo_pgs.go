// Package clientrepo manages repository layer of clients.
package clientrepo

import (
	"context"
	"database/sql"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/pkg/dbpkg"
	"github.com/TNT-747/ebank/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates client repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns client RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    clients (first_name, last_name, identity_number, birth_date, email, address, username, hashed_password)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, first_name, last_name, identity_number, birth_date, email, address, username, hashed_password, created_at
`

// Create creates the client and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateClientParams) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.FirstName,
		arg.LastName,
		arg.IdentityNumber,
		arg.BirthDate,
		arg.Email,
		arg.Address,
		arg.Username,
		arg.HashedPassword,
	)

	c, err := scanClient(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "clients_identity_number_key":
				return c, domain.ErrIdentityNumberAlreadyExists
			case "clients_email_key":
				return c, domain.ErrEmailAlreadyExists
			case "clients_username_key":
				return c, domain.ErrUsernameAlreadyExists
			}
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getByIdentityNumberQuery = `
SELECT id, first_name, last_name, identity_number, birth_date, email, address, username, hashed_password, created_at
FROM clients
WHERE identity_number = $1
`

// GetByIdentityNumber returns the client with the given identity number.
func (r *RepoPGS) GetByIdentityNumber(ctx context.Context, identityNumber string) (domain.Client, error) {
	return r.get(ctx, getByIdentityNumberQuery, identityNumber)
}

const getByUsernameQuery = `
SELECT id, first_name, last_name, identity_number, birth_date, email, address, username, hashed_password, created_at
FROM clients
WHERE username = $1
`

// GetByUsername returns the client with the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.Client, error) {
	return r.get(ctx, getByUsernameQuery, username)
}

const existsByEmailQuery = `
SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1)
`

// ExistsByEmail reports whether a client with the given email exists.
func (r *RepoPGS) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, existsByEmailQuery, email)
}

const existsByIdentityNumberQuery = `
SELECT EXISTS (SELECT 1 FROM clients WHERE identity_number = $1)
`

// ExistsByIdentityNumber reports whether a client with the given identity number exists.
func (r *RepoPGS) ExistsByIdentityNumber(ctx context.Context, identityNumber string) (bool, error) {
	return r.exists(ctx, existsByIdentityNumberQuery, identityNumber)
}

const existsByUsernameQuery = `
SELECT EXISTS (SELECT 1 FROM clients WHERE username = $1)
`

// ExistsByUsername reports whether a client with the given username exists.
func (r *RepoPGS) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, existsByUsernameQuery, username)
}

const listQuery = `
SELECT id, first_name, last_name, identity_number, birth_date, email, address, username, hashed_password, created_at
FROM clients
ORDER BY id
`

// List returns all registered clients.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Client, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Client{}

	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.IdentityNumber,
			&c.BirthDate,
			&c.Email,
			&c.Address,
			&c.Username,
			&c.HashedPassword,
			&c.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, c)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func (r *RepoPGS) get(ctx context.Context, query, key string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, key)

	c, err := scanClient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return c, domain.ErrClientNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

func (r *RepoPGS) exists(ctx context.Context, query, key string) (bool, error) {
	l := zerolog.Ctx(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&exists); err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return exists, nil
}

func scanClient(row *sql.Row) (domain.Client, error) {
	var c domain.Client

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.IdentityNumber,
		&c.BirthDate,
		&c.Email,
		&c.Address,
		&c.Username,
		&c.HashedPassword,
		&c.CreatedAt,
	)

	return c, err
}
