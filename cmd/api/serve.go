package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harentsoaR/health-record-api/internal/config"
	"github.com/harentsoaR/health-record-api/internal/db"
	"github.com/harentsoaR/health-record-api/internal/handlers"
	"github.com/harentsoaR/health-record-api/internal/server"
	"github.com/harentsoaR/health-record-api/internal/services"
	"github.com/harentsoaR/health-record-api/internal/storage"
	"github.com/harentsoaR/health-record-api/internal/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Printf("MONGO_DATABASE: %s", cfg.MongoDatabase)
	log.Printf("API_PORT: %s", cfg.Port)
	log.Printf("API_BASE_URL: %s", cfg.APIBaseURL)
	log.Printf("STORAGE_BACKEND: %s", cfg.Storage.Backend)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())
	log.Println("Successfully connected to MongoDB!")

	users := store.NewUserStore(client.Database(cfg.MongoDatabase))
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Initialize Services ---
	images, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	if err := images.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("prepare storage: %w", err)
	}

	var notifier handlers.Notifier
	if svc := services.NewNotificationService(cfg.Textbelt); svc != nil {
		notifier = svc
		log.Println("SMS notifications enabled.")
	}

	h := handlers.NewHandler(users, images, notifier, cfg.JWTSecret)
	router, err := server.NewRouter(cfg, h)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
