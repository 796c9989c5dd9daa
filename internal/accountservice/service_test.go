package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/pkg/errorspkg"
	"github.com/TNT-747/ebank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	rib := randompkg.RIB()
	identityNumber := randompkg.IdentityNumber()

	client := domain.Client{
		ID:             7,
		IdentityNumber: identityNumber,
	}

	newAccount := domain.Account{
		ID:        1,
		RIB:       rib,
		Balance:   decimal.Zero,
		Status:    domain.StatusOpen,
		ClientID:  client.ID,
		CreatedAt: time.Now().UTC(),
	}

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo, clients *MockClientGetter)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name: "Unknown identity number",
			buildStubs: func(repo *MockRepo, clients *MockClientGetter) {
				clients.EXPECT().GetByIdentityNumber(gomock.Any(), gomock.Eq(identityNumber)).
					Times(1).
					Return(domain.Client{}, domain.ErrClientNotFound)
				repo.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrClientNotFound)
			},
		},
		{
			name: "RIB already taken",
			buildStubs: func(repo *MockRepo, clients *MockClientGetter) {
				clients.EXPECT().GetByIdentityNumber(gomock.Any(), gomock.Eq(identityNumber)).
					Times(1).
					Return(client, nil)
				repo.EXPECT().Exists(gomock.Any(), gomock.Eq(rib)).
					Times(1).
					Return(true, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrRIBAlreadyExists)
			},
		},
		{
			name: "Exists check fails",
			buildStubs: func(repo *MockRepo, clients *MockClientGetter) {
				clients.EXPECT().GetByIdentityNumber(gomock.Any(), gomock.Eq(identityNumber)).
					Times(1).
					Return(client, nil)
				repo.EXPECT().Exists(gomock.Any(), gomock.Eq(rib)).
					Times(1).
					Return(false, errorspkg.ErrInternal)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, clients *MockClientGetter) {
				clients.EXPECT().GetByIdentityNumber(gomock.Any(), gomock.Eq(identityNumber)).
					Times(1).
					Return(client, nil)
				repo.EXPECT().Exists(gomock.Any(), gomock.Eq(rib)).
					Times(1).
					Return(false, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(rib), gomock.Eq(client.ID)).
					Times(1).
					Return(newAccount, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, newAccount, res)
				require.True(t, res.Balance.IsZero())
				require.Equal(t, domain.StatusOpen, res.Status)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			clients := NewMockClientGetter(ctrl)
			service := New(repo, clients)

			tc.buildStubs(repo, clients)

			tc.checkResponse(service.Open(context.Background(), rib, identityNumber))
		})
	}
}

func TestTotalBalance(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	clients := NewMockClientGetter(ctrl)
	service := New(repo, clients)

	accounts := []domain.Account{
		{ID: 1, Balance: decimal.RequireFromString("500.00")},
		{ID: 2, Balance: decimal.RequireFromString("300.00")},
		{ID: 3, Balance: decimal.Zero},
	}

	repo.EXPECT().ListByClient(gomock.Any(), gomock.Eq(int64(7))).
		Times(1).
		Return(accounts, nil)

	total, err := service.TotalBalance(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("800.00")))
}

func TestTotalBalanceEmpty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo, NewMockClientGetter(ctrl))

	repo.EXPECT().ListByClient(gomock.Any(), gomock.Eq(int64(7))).
		Times(1).
		Return([]domain.Account{}, nil)

	total, err := service.TotalBalance(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, total.IsZero())
}
