package accountdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/golang/mock/gomock"

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

func TestOpen(t *testing.T) {
	client := test.RandomClient()
	account := test.RandomAccount(client.ID)
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("rib", ValidRIB); err != nil {
			t.Fatalf("RegisterValidation returned error: %v", err)
		}
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	type requestBody struct {
		RIB            string `json:"rib"`
		IdentityNumber string `json:"identity_number"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name: "OK",
			requestBody: requestBody{
				RIB:            account.RIB,
				IdentityNumber: client.IdentityNumber,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Open(gomock.Any(), gomock.Eq(account.RIB), gomock.Eq(client.IdentityNumber)).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*accountData)
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(account, got.Account, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "NoAuthorization",
			requestBody: requestBody{
				RIB:            account.RIB,
				IdentityNumber: client.IdentityNumber,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Open(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "InvalidRIB",
			requestBody: requestBody{
				RIB:            "not-a-rib",
				IdentityNumber: client.IdentityNumber,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Open(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "RIB must be a valid RIB",
		},
		{
			name: "MissingIdentityNumber",
			requestBody: requestBody{
				RIB: account.RIB,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Open(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "IdentityNumber is required",
		},
		{
			name: "ErrClientNotFound",
			requestBody: requestBody{
				RIB:            account.RIB,
				IdentityNumber: client.IdentityNumber,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Open(gomock.Any(), gomock.Eq(account.RIB), gomock.Eq(client.IdentityNumber)).
					Times(1).
					Return(domain.Account{}, domain.ErrClientNotFound)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrClientNotFound.Error(),
		},
		{
			name: "ErrRIBAlreadyExists",
			requestBody: requestBody{
				RIB:            account.RIB,
				IdentityNumber: client.IdentityNumber,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Open(gomock.Any(), gomock.Eq(account.RIB), gomock.Eq(client.IdentityNumber)).
					Times(1).
					Return(domain.Account{}, domain.ErrRIBAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrRIBAlreadyExists.Error(),
		},
		{
			name: "InternalServerError",
			requestBody: requestBody{
				RIB:            account.RIB,
				IdentityNumber: client.IdentityNumber,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Open(gomock.Any(), gomock.Eq(account.RIB), gomock.Eq(client.IdentityNumber)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
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
			accountService := NewMockService(ctrl)
			entryService := NewMockEntryService(ctrl)
			accountHandler := NewHandler(accountService, entryService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.POST("/accounts", accountHandler.Open)

			tc.buildStubs(accountService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
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

			res := web.Response{Data: &accountData{}}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestGet(t *testing.T) {
	client := test.RandomClient()
	account := test.RandomAccount(client.ID)
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	testCases := []struct {
		name           string
		accountID      int64
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:      "OK",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*accountData)
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(account, got.Account, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:      "NoAuthorization",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name:      "InvalidID",
			accountID: -1,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:      "NotFound",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:      "InternalServerError",
			accountID: account.ID,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
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
			accountService := NewMockService(ctrl)
			entryService := NewMockEntryService(ctrl)
			accountHandler := NewHandler(accountService, entryService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.GET("/accounts/:id", accountHandler.Get)

			tc.buildStubs(accountService)

			url := fmt.Sprintf("/accounts/%d", tc.accountID)

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

			res := web.Response{Data: &accountData{}}

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

func TestListTransactions(t *testing.T) {
	client := test.RandomClient()
	account := test.RandomAccount(client.ID)
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	transactions := []domain.Entry{
		test.RandomEntry(account.ID, domain.EntryCredit),
		test.RandomEntry(account.ID, domain.EntryDebit),
	}

	testCases := []struct {
		name           string
		accountID      int64
		query          string
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(entryService *MockEntryService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:      "OK",
			accountID: account.ID,
			query:     "?page_id=1&page_size=10",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(entryService *MockEntryService) {
				entryService.EXPECT().
					List(gomock.Any(), gomock.Eq(account.ID), gomock.Eq(int32(10)), gomock.Eq(int32(1))).
					Times(1).
					Return(transactions, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*entriesData)
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(transactions, got.Transactions, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:      "NoAuthorization",
			accountID: account.ID,
			query:     "?page_id=1&page_size=10",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(entryService *MockEntryService) {
				entryService.EXPECT().
					List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name:      "PageSizeTooLarge",
			accountID: account.ID,
			query:     "?page_id=1&page_size=500",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(entryService *MockEntryService) {
				entryService.EXPECT().
					List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "PageSize must be less or equal to 100",
		},
		{
			name:      "MissingPageID",
			accountID: account.ID,
			query:     "?page_size=10",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(entryService *MockEntryService) {
				entryService.EXPECT().
					List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "PageID is required",
		},
		{
			name:      "InternalServerError",
			accountID: account.ID,
			query:     "?page_id=1&page_size=10",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, client.Username, duration)
			},
			buildStubs: func(entryService *MockEntryService) {
				entryService.EXPECT().
					List(gomock.Any(), gomock.Eq(account.ID), gomock.Eq(int32(10)), gomock.Eq(int32(1))).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
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
			accountService := NewMockService(ctrl)
			entryService := NewMockEntryService(ctrl)
			accountHandler := NewHandler(accountService, entryService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.GET("/accounts/:id/transactions", accountHandler.ListTransactions)

			tc.buildStubs(entryService)

			url := fmt.Sprintf("/accounts/%d/transactions%s", tc.accountID, tc.query)

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

			res := web.Response{Data: &entriesData{}}

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
