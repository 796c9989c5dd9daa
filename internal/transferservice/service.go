// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error)
}

// AccountService provides account lookups needed by transfer service layer.
type AccountService interface {
	GetByRIB(ctx context.Context, rib string) (domain.Account, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo     Repo
	accounts AccountService
	now      func() time.Time
}

// New returns transfer service struct to manage transfer bussines logic.
func New(tr Repo, as AccountService) *Service {
	return &Service{
		repo:     tr,
		accounts: as,
		now:      time.Now,
	}
}

// validRequest runs the transfer validations in a fixed order so that the
// first violation always wins and user facing messages stay deterministic.
func (s *Service) validRequest(ctx context.Context, arg domain.CreateTransferParams) (source, destination domain.Account, err error) {
	l := zerolog.Ctx(ctx)

	source, err = s.accounts.GetByRIB(ctx, arg.SourceRIB)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return source, destination, domain.ErrSourceAccountNotFound
		}

		l.Error().Err(err).Send()

		return source, destination, err
	}

	destination, err = s.accounts.GetByRIB(ctx, arg.DestinationRIB)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return source, destination, domain.ErrDestinationAccountNotFound
		}

		l.Error().Err(err).Send()

		return source, destination, err
	}

	if source.Status != domain.StatusOpen {
		return source, destination, domain.ErrSourceAccountBlocked
	}

	if destination.Status != domain.StatusOpen {
		return source, destination, domain.ErrDestinationAccountBlocked
	}

	if !arg.Amount.IsPositive() {
		return source, destination, domain.ErrInvalidAmount
	}

	if source.Balance.LessThan(arg.Amount) {
		return source, destination, domain.ErrInsufficientFunds
	}

	if source.RIB == destination.RIB {
		return source, destination, domain.ErrSameAccountTransfer
	}

	return source, destination, nil
}

// Execute validates the transfer request against the current snapshot of
// both accounts and then commits it atomically: two balance mutations and
// two ledger entries sharing one timestamp, or nothing at all.
func (s *Service) Execute(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	source, destination, err := s.validRequest(ctx, arg)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	txArg := domain.TransferTxParams{
		SourceID:      source.ID,
		DestinationID: destination.ID,
		Amount:        arg.Amount,
		DebitLabel:    fmt.Sprintf("Virement émis vers %s - %s", destination.RIB, arg.Motif),
		CreditLabel:   fmt.Sprintf("Virement en votre faveur de %s - %s", source.RIB, arg.Motif),
		CreatedAt:     s.now(),
	}

	result, err := s.repo.Transfer(ctx, txArg)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}
