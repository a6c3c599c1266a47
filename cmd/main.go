// Package main starts the duobank API server.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/avelhart/duobank/cmd/httpserver"
	"github.com/avelhart/duobank/internal/middleware"
	"github.com/avelhart/duobank/pkg/configpkg"
	"github.com/avelhart/duobank/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	if err := dbpkg.MigrateUp(config.MigrationSource, config.DBSource); err != nil {
		logger.Fatal().Err(err).Msg("cannot run db migrations")
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("DUOBANK API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
