package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/nuitfeedback/internal/app"
	"github.com/shrimpsizemoose/nuitfeedback/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	if err := service.Prepare(context.Background()); err != nil {
		logger.Error.Fatalf("Failed to prepare database: %v", err)
	}

	server := handlers.NewServer(service.Config.Server.Port, handlers.NewRouter(service))

	go func() {
		logger.Info.Printf("Starting Nuit des Chercheurs server on %s", server.Addr)
		logger.Debug.Printf("Database: %s, live feed enabled: %t", service.Config.Database.DSN, service.Live.Enabled())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Fatalf("Server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error.Printf("Shutdown: %v", err)
	}
	logger.Info.Println("Server stopped")
}
