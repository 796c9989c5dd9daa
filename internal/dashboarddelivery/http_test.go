package dashboarddelivery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/internal/middleware"
	"github.com/TNT-747/ebank/internal/test"
	"github.com/TNT-747/ebank/pkg/errorspkg"
	"github.com/TNT-747/ebank/pkg/randompkg"
	"github.com/TNT-747/ebank/pkg/tokenpkg"
	"github.com/TNT-747/ebank/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestGet(t *testing.T) {
	client := test.RandomClient()
	account := test.RandomAccount(client.ID)
	account2 := test.RandomAccount(client.ID)

	dashboard := domain.Dashboard{
		SelectedAccount: &account,
		RecentTransactions: []domain.Entry{
			test.RandomEntry(account.ID, domain.EntryCredit),
			test.RandomEntry(account.ID, domain.EntryDebit),
		},
		AllAccounts:  []domain.Account{account, account2},
		TotalBalance: account.Balance.Add(account2.Balance),
	}

	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	testCases := []struct {
		name           string
		clientID       int64
		query          string
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(dashboardService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:     "OK",
			clientID: client.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(dashboardService *MockService) {
				dashboardService.EXPECT().
					Get(gomock.Any(), gomock.Eq(client.ID), gomock.Eq(int64(0))).
					Times(1).
					Return(dashboard, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*dashboardData)
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(dashboard, got.Dashboard, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:     "OKSelectedAccount",
			clientID: client.ID,
			query:    fmt.Sprintf("?account_id=%d", account2.ID),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(dashboardService *MockService) {
				dashboardService.EXPECT().
					Get(gomock.Any(), gomock.Eq(client.ID), gomock.Eq(account2.ID)).
					Times(1).
					Return(dashboard, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData:      func(data any) {},
		},
		{
			name:     "NoAuthorization",
			clientID: client.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(dashboardService *MockService) {
				dashboardService.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name:     "InvalidClientID",
			clientID: -1,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(dashboardService *MockService) {
				dashboardService.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:     "InternalServerError",
			clientID: client.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(dashboardService *MockService) {
				dashboardService.EXPECT().
					Get(gomock.Any(), gomock.Eq(client.ID), gomock.Eq(int64(0))).
					Times(1).
					Return(domain.Dashboard{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			dashboardService := NewMockService(ctrl)
			dashboardHandler := NewHandler(dashboardService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.GET("/clients/:id/dashboard", dashboardHandler.Get)

			tc.buildStubs(dashboardService)

			url := fmt.Sprintf("/clients/%d/dashboard%s", tc.clientID, tc.query)

			req, err := http.NewRequest(http.MethodGet, url, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, %+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &dashboardData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode == http.StatusOK {
				tc.checkData(res.Data)
			} else if tc.wantError != "" && res.Error != tc.wantError {
				t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
			}
		})
	}
}
