package main

import (
	"os"

	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/logger"
	"github.com/kim0040/codingmaker-web-sub000/internal/server"
)

// @title CodingMaker Academy API
// @version 1.0
// @description Backend API for the CodingMaker academy platform

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully")
}
