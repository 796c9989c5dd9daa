// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/pkg/errorspkg"
	"github.com/TNT-747/ebank/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Execute(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type request struct {
	SourceRIB      string `json:"source_rib" binding:"required,rib"`
	DestinationRIB string `json:"destination_rib" binding:"required,rib"`
	Amount         string `json:"amount" binding:"required"`
	Motif          string `json:"motif" binding:"required"`
}

type data struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to execute a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
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

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: domain.ErrInvalidAmount.Error()})

		return
	}

	arg := domain.CreateTransferParams{
		SourceRIB:      req.SourceRIB,
		DestinationRIB: req.DestinationRIB,
		Amount:         amount,
		Motif:          req.Motif,
	}

	result, err := h.service.Execute(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		gctx.JSON(statusCode(err), web.Response{Error: publicError(err).Error()})

		return
	}

	res := response{
		Data: data{result},
	}

	gctx.JSON(http.StatusOK, res)
}

// statusCode maps the transfer error taxonomy onto HTTP statuses.
func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrSourceAccountNotFound),
		errors.Is(err, domain.ErrDestinationAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSourceAccountBlocked),
		errors.Is(err, domain.ErrDestinationAccountBlocked):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrSameAccountTransfer):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTransferBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func publicError(err error) error {
	if statusCode(err) == http.StatusInternalServerError {
		return errorspkg.ErrInternal
	}

	return err
}
