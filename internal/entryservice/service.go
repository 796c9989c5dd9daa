// Package entryservice manages business logic layer of ledger entries.
package entryservice

import (
	"context"

	"github.com/TNT-747/ebank/internal/domain"
)

// Repo provides data access layer interface needed by entry service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package entryservice
type Repo interface {
	ListByAccount(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Entry, error)
	Top(ctx context.Context, accountID int64, n int32) ([]domain.Entry, error)
}

// Service facilitates entry service layer logic.
type Service struct {
	repo Repo
}

// New returns entry service struct.
func New(er Repo) *Service {
	return &Service{repo: er}
}

// List returns one page of the account's entries, newest first.
func (s *Service) List(ctx context.Context, accountID int64, pageSize, pageID int32) ([]domain.Entry, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.ListByAccount(ctx, accountID, limit, offset)
}

// Top returns the n most recent entries of the account.
func (s *Service) Top(ctx context.Context, accountID int64, n int32) ([]domain.Entry, error) {
	return s.repo.Top(ctx, accountID, n)
}
