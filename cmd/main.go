// Package main provides the API to manage clients, accounts and money transfers.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/TNT-747/ebank/cmd/httpserver"
	"github.com/TNT-747/ebank/internal/middleware"
	"github.com/TNT-747/ebank/pkg/configpkg"
	"github.com/TNT-747/ebank/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("EBANK API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
