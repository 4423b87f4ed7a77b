package main

import (
	"lunchtime/config"
	"lunchtime/di"
	"lunchtime/shared/logger"
)

// @title Lunchtime API
// @version 1.0
// @description Restaurant directory and table reservation service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
