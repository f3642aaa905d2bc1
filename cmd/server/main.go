package main

import (
	"github.com/graphloom/graphloom/internal/config"
	"github.com/graphloom/graphloom/internal/server"
	"github.com/graphloom/graphloom/internal/util"
	"github.com/graphloom/graphloom/pkg/logger"
	"github.com/graphloom/graphloom/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}

	server.Init(cfg)
}
