package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/handler"
	"github.com/vaultpass/passgen-go/internal/repository"
	"github.com/vaultpass/passgen-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	params := crypto.DefaultHashParams()
	params.Memory = cfg.Argon2MemoryKiB
	params.Iterations = cfg.Argon2Iterations
	hasher := crypto.NewHasher(params, nil)

	limits := service.Limits{MaxLength: cfg.MaxLength, MaxCount: cfg.MaxCount}

	routes := handler.Routes{
		Strength:       handler.NewStrengthHandler(service.NewStrengthService(cfg.MinEntropyBits)),
		JWTSecret:      cfg.JWTSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}

	// The audit log is optional; generation works without a database.
	var recorder service.EventRecorder
	db, err := openAuditDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database unavailable, audit log disabled", "error", err)
	} else {
		defer db.Close()
		audit := service.NewAuditService(repository.NewGenerationRepository(db))
		recorder = audit
		routes.Audit = handler.NewAuditHandler(audit)
	}

	genService := service.NewGeneratorService(crypto.DefaultGenerator(), hasher, limits, recorder)
	routes.Generator = handler.NewGeneratorHandler(genService)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(ctx, routes),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "audit", routes.Audit != nil)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func openAuditDB(dsn string) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := repository.NewDB(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := repository.NewGenerationRepository(db).Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
