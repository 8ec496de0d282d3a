package main

import (
	"complaintbox/backend/internal/api/handler"
	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/complaint"
	"complaintbox/backend/internal/config"
	"complaintbox/backend/internal/policy"
	"complaintbox/backend/internal/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func setupDependencies(cfg *config.Config) (*storage.Service, error) {
	// 1. PostgreSQL
	db, err := storage.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// 2. Redis (необов'язковий: без нього обмеження спроб входу вимкнене)
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	} else {
		log.Println("WARNING: REDIS_ADDR is not set, login throttling is disabled.")
	}

	s := storage.NewStorageService(db, rdb)

	if rdb != nil {
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, errors.Join(fmt.Errorf("connect redis: %w", err), s.Close())
		}
	}

	// 3. Міграції (Створення таблиць)
	if err := s.Migrate(); err != nil {
		return nil, errors.Join(fmt.Errorf("run migrations: %w", err), s.Close())
	}

	log.Println("Database connection established, migrations complete.")
	return s, nil
}

func main() {
	log.Println("Starting Complaint Box Backend...")
	if err := run(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

// run owns every resource; returning (instead of exiting) lets the defers release them.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	// 1. Ініціалізація залежностей
	s, err := setupDependencies(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("ERROR: Failed to close storage: %v", err)
		}
	}()

	// 2. Сервіси
	tokens := auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenTTL, config.TokenIssuer)
	authService := auth.NewService(s, s, tokens, auth.Options{
		MaxAttempts:   cfg.LoginMaxAttempts,
		AttemptWindow: cfg.LoginAttemptWindow,
	})
	complaints := complaint.NewService(s, policy.MustNew())

	// 3. Роутинг
	h := handler.NewHandler(authService, complaints)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        handler.NewRouter(h),
		ReadTimeout:    config.DefaultReadTimeout,
		WriteTimeout:   config.DefaultWriteTimeout,
		MaxHeaderBytes: config.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, server, config.DefaultShutdownTimeout)
}

// serve runs the server until ctx is cancelled or ListenAndServe fails.
func serve(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("INFO: Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("INFO: Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
