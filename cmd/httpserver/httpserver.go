// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/TNT-747/ebank/internal/accountdelivery"
	"github.com/TNT-747/ebank/internal/accountrepo"
	"github.com/TNT-747/ebank/internal/accountservice"
	"github.com/TNT-747/ebank/internal/clientdelivery"
	"github.com/TNT-747/ebank/internal/clientrepo"
	"github.com/TNT-747/ebank/internal/clientservice"
	"github.com/TNT-747/ebank/internal/dashboarddelivery"
	"github.com/TNT-747/ebank/internal/dashboardservice"
	"github.com/TNT-747/ebank/internal/entryrepo"
	"github.com/TNT-747/ebank/internal/entryservice"
	"github.com/TNT-747/ebank/internal/middleware"
	"github.com/TNT-747/ebank/internal/transferdelivery"
	"github.com/TNT-747/ebank/internal/transferrepo"
	"github.com/TNT-747/ebank/internal/transferservice"
	"github.com/TNT-747/ebank/pkg/configpkg"
	"github.com/TNT-747/ebank/pkg/mailpkg"
	"github.com/TNT-747/ebank/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	clientRepo := clientrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn, config.TransferLockTimeout.Milliseconds())

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	mailer := mailpkg.NewSMTPMailer(config.SMTPAddress, config.SMTPSender)

	clientService := clientservice.New(clientRepo, mailer)
	accountService := accountservice.New(accountRepo, clientRepo)
	entryService := entryservice.New(entryRepo)
	transferService := transferservice.New(transferRepo, accountService)
	dashboardService := dashboardservice.New(accountService, entryService)

	clientHandler := clientdelivery.NewHandler(clientService, tokenMaker, config.AccessTokenDuration)
	accountHandler := accountdelivery.NewHandler(accountService, entryService)
	transferHandler := transferdelivery.NewHandler(transferService)
	dashboardHandler := dashboarddelivery.NewHandler(dashboardService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/auth/login", clientHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/clients", clientHandler.Create)
	authRoutes.GET("/clients", clientHandler.List)
	authRoutes.GET("/clients/:id/dashboard", dashboardHandler.Get)

	authRoutes.POST("/accounts", accountHandler.Open)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.GET("/accounts/:id/transactions", accountHandler.ListTransactions)

	authRoutes.POST("/transfers", transferHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("rib", accountdelivery.ValidRIB)
		if err != nil {
			return nil, errors.New("cannot register rib validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
