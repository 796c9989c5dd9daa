// Package dashboarddelivery manages delivery layer of client dashboards.
package dashboarddelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/pkg/errorspkg"
	"github.com/TNT-747/ebank/pkg/web"
)

// Service provides service layer interface needed by dashboard delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package dashboarddelivery
type Service interface {
	Get(ctx context.Context, clientID, selectedAccountID int64) (domain.Dashboard, error)
}

// Handler facilitates dashboard delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns dashboard handler.
func NewHandler(ds Service) *Handler {
	return &Handler{
		service: ds,
	}
}

type getURI struct {
	ClientID int64 `uri:"id" binding:"required,min=1"`
}

type getQuery struct {
	AccountID int64 `form:"account_id" binding:"omitempty,min=1"`
}

type dashboardData struct {
	Dashboard domain.Dashboard `json:"dashboard"`
}

type response struct {
	Data dashboardData `json:"data,omitempty"`
}

// Get handles http request to assemble the client's dashboard.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri getURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var query getQuery
	if err := gctx.ShouldBindQuery(&query); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	dashboard, err := h.service.Get(ctx, uri.ClientID, query.AccountID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, response{Data: dashboardData{dashboard}})
}
