package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"crm-client/internal/app"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MAIN] No .env file found, relying on system env vars")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := app.NewServer()
	errs := make(chan error, 1)
	go func() {
		errs <- srv.Start()
	}()

	select {
	case err := <-errs:
		if err != nil {
			log.Fatalf("[MAIN] server failed: %v", err)
		}
		return
	case <-ctx.Done():
	}

	log.Println("[MAIN] shutting down, waiting for pending backend syncs")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[MAIN] shutdown: %v", err)
	}
	log.Println("[MAIN] stopped")
}
