package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/nuitfeedback/internal/app"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	// the server owns reset and seeding; only make sure the table exists
	if err := service.Store.ApplyMigrations(context.Background()); err != nil {
		logger.Error.Fatalf("Failed to apply migrations: %v", err)
	}

	scheduler, err := app.NewSimulationScheduler(service)
	if err != nil {
		logger.Error.Fatalf("Failed to initialize simulator: %v", err)
	}
	scheduler.Start()
	logger.Info.Printf("Simulating visitors every %s", service.Config.Simulator.Interval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	scheduler.Stop()
	logger.Info.Println("Simulation stopped")
}
