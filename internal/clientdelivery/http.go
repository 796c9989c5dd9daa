// Package clientdelivery manages delivery layer of clients.
package clientdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/TNT-747/ebank/internal/clientservice"
	"github.com/TNT-747/ebank/internal/domain"
	"github.com/TNT-747/ebank/pkg/errorspkg"
	"github.com/TNT-747/ebank/pkg/tokenpkg"
	"github.com/TNT-747/ebank/pkg/web"
)

// The birth date is accepted as a plain calendar date.
const birthDateLayout = "2006-01-02"

// Service provides service layer interface needed by client delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package clientdelivery
type Service interface {
	Create(ctx context.Context, arg clientservice.CreateClientInput) (domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	CheckPassword(ctx context.Context, username, password string) (domain.Client, error)
}

// Handler facilitates client delivery layer logic.
type Handler struct {
	service             Service
	tokenMaker          tokenpkg.Maker
	accessTokenDuration time.Duration
}

// NewHandler returns client handler.
func NewHandler(cs Service, tm tokenpkg.Maker, accessTokenDuration time.Duration) *Handler {
	return &Handler{
		service:             cs,
		tokenMaker:          tm,
		accessTokenDuration: accessTokenDuration,
	}
}

type clientData struct {
	Client domain.Client `json:"client"`
}

type clientResponse struct {
	Data clientData `json:"data,omitempty"`
}

type createRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	IdentityNumber string `json:"identity_number" binding:"required"`
	BirthDate      string `json:"birth_date" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Address        string `json:"address" binding:"required"`
}

// Create handles http request to register a client. The username and
// password are generated server side and mailed to the client.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
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

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: "BirthDate must be formatted as " + birthDateLayout})

		return
	}

	arg := clientservice.CreateClientInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		IdentityNumber: req.IdentityNumber,
		BirthDate:      birthDate,
		Email:          req.Email,
		Address:        req.Address,
	}

	client, err := h.service.Create(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrIdentityNumberAlreadyExists),
			errors.Is(err, domain.ErrEmailAlreadyExists),
			errors.Is(err, domain.ErrUsernameAlreadyExists):
			gctx.JSON(http.StatusConflict, web.Response{Error: err.Error()})
		default:
			gctx.JSON(http.StatusInternalServerError, web.Response{Error: errorspkg.ErrInternal.Error()})
		}

		return
	}

	gctx.JSON(http.StatusOK, clientResponse{Data: clientData{client}})
}

type clientsData struct {
	Clients []domain.Client `json:"clients"`
}

type clientsResponse struct {
	Data clientsData `json:"data,omitempty"`
}

// List handles http request to list all registered clients.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	clients, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, clientsResponse{Data: clientsData{clients}})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login handles http login request and returns the client with an access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
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

	client, err := h.service.CheckPassword(ctx, req.Username, req.Password)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrClientNotFound):
			gctx.JSON(http.StatusNotFound, web.Response{Error: err.Error()})
		case errors.Is(err, domain.ErrWrongPassword):
			gctx.JSON(http.StatusUnauthorized, web.Response{Error: err.Error()})
		default:
			gctx.JSON(http.StatusInternalServerError, web.Response{Error: errorspkg.ErrInternal.Error()})
		}

		return
	}

	accessToken, payload, err := h.tokenMaker.CreateToken(client.Username, h.accessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Response{Error: errorspkg.ErrInternal.Error()})

		return
	}

	res := web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt.Format(time.RFC3339),
		Data:                 clientData{client},
	}

	gctx.JSON(http.StatusOK, res)
}
