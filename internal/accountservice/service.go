// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, rib string, clientID int64) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	GetByRIB(ctx context.Context, rib string) (domain.Account, error)
	Exists(ctx context.Context, rib string) (bool, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Account, error)
}

// ClientGetter resolves clients by identity number.
type ClientGetter interface {
	GetByIdentityNumber(ctx context.Context, identityNumber string) (domain.Client, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo    Repo
	clients ClientGetter
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, cg ClientGetter) *Service {
	return &Service{
		repo:    ar,
		clients: cg,
	}
}

// Open creates an OPEN account with zero balance for an existing,
// identity-verified client. The RIB must not already be taken.
func (s *Service) Open(ctx context.Context, rib, identityNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	client, err := s.clients.GetByIdentityNumber(ctx, identityNumber)
	if err != nil {
		l.Info().Err(err).Str("identity_number", identityNumber).Send()
		return domain.Account{}, err
	}

	taken, err := s.repo.Exists(ctx, rib)
	if err != nil {
		return domain.Account{}, err
	}

	if taken {
		return domain.Account{}, domain.ErrRIBAlreadyExists
	}

	account, err := s.repo.Create(ctx, rib, client.ID)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByRIB returns the account with the given RIB.
func (s *Service) GetByRIB(ctx context.Context, rib string) (domain.Account, error) {
	return s.repo.GetByRIB(ctx, rib)
}

// ListByClient returns all accounts of the given client, newest first.
func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]domain.Account, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// TotalBalance sums the balances of all accounts owned by the client.
func (s *Service) TotalBalance(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	accounts, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}

	return total, nil
}
