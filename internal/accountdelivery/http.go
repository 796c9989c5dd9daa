// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/pkg/errorspkg"
	"github.com/TNT-747/ebank/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Open(ctx context.Context, rib, identityNumber string) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
}

// EntryService provides ledger listing needed by account delivery layer.
type EntryService interface {
	List(ctx context.Context, accountID int64, pageSize, pageID int32) ([]domain.Entry, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
	entries EntryService
}

// NewHandler returns account handler.
func NewHandler(as Service, es EntryService) *Handler {
	return &Handler{
		service: as,
		entries: es,
	}
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type accountResponse struct {
	Data accountData `json:"data,omitempty"`
}

type openRequest struct {
	RIB            string `json:"rib" binding:"required,rib"`
	IdentityNumber string `json:"identity_number" binding:"required"`
}

// Open handles http request to open an account for an existing client.
func (h *Handler) Open(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req openRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		} else {
			errMsg = err.Error()
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	account, err := h.service.Open(ctx, req.RIB, req.IdentityNumber)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrClientNotFound):
			gctx.JSON(http.StatusBadRequest, web.Response{Error: err.Error()})
		case errors.Is(err, domain.ErrRIBAlreadyExists):
			gctx.JSON(http.StatusConflict, web.Response{Error: err.Error()})
		default:
			gctx.JSON(http.StatusInternalServerError, web.Response{Error: errorspkg.ErrInternal.Error()})
		}

		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get an account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	account, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}

type listTransactionsURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type listTransactionsQuery struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type entriesData struct {
	Transactions []domain.Entry `json:"transactions"`
}

type entriesResponse struct {
	Data entriesData `json:"data,omitempty"`
}

// ListTransactions handles http request to list the account's ledger
// entries, newest first.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri listTransactionsURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var query listTransactionsQuery
	if err := gctx.ShouldBindQuery(&query); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		} else {
			errMsg = err.Error()
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	entries, err := h.entries.List(ctx, uri.ID, query.PageSize, query.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, entriesResponse{Data: entriesData{entries}})
}
