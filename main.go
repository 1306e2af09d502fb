package main

import (
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/catalog"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/config"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/logger"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/monitor"
	"github.com/sheikhziz18-a11y/Multiplayer-Football-Auction/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Load the player catalog
	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		logger.Log.Fatalf("Failed to load player catalog: %v", err)
	}
	logger.Log.Infof("Loaded %d players from %s", cat.Size(), cfg.Catalog.File)

	// Start metrics endpoint
	mon := monitor.NewMonitor("auction")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg, cat, mon)

	// Start Server
	logger.Log.Infof("Starting auction server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
