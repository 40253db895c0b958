// Package main starts the memoria HTTP API server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	memoria "github.com/memoriasite/memoria"
	"github.com/memoriasite/memoria/internal/logging"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	_ "github.com/mattn/go-sqlite3"
)

type envConfig struct {
	Addr       string `env:"MEMORIA_HTTP_ADDR" envDefault:":8080"`
	BaseURL    string `env:"MEMORIA_BASE_URL" envDefault:"http://localhost:3000"`
	CORSOrigin string `env:"MEMORIA_CORS_ORIGIN"`

	DBDriver string `env:"MEMORIA_DB_DRIVER" envDefault:"sqlite3"`
	DBDSN    string `env:"MEMORIA_DB_DSN" envDefault:"file:memoria.db?cache=shared"`

	StorageEndpoint  string `env:"MEMORIA_STORAGE_ENDPOINT"`
	StorageRegion    string `env:"MEMORIA_STORAGE_REGION" envDefault:"us-east-1"`
	StorageAccessKey string `env:"MEMORIA_STORAGE_ACCESS_KEY"`
	StorageSecretKey string `env:"MEMORIA_STORAGE_SECRET_KEY"`
	StorageBucket    string `env:"MEMORIA_STORAGE_BUCKET" envDefault:"memoria"`
	StoragePublicURL string `env:"MEMORIA_STORAGE_PUBLIC_URL"`
	StorageUseSSL    bool   `env:"MEMORIA_STORAGE_USE_SSL" envDefault:"true"`

	QRSize int `env:"MEMORIA_QR_SIZE" envDefault:"250"`

	LogLevel     string `env:"MEMORIA_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"MEMORIA_LOG_FORMAT" envDefault:"console"`
	LogAddSource bool   `env:"MEMORIA_LOG_ADD_SOURCE"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("memoria: %v", err)
	}
}

func run(ctx context.Context) error {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg := memoria.DefaultConfig()
	cfg.App.BaseURL = ec.BaseURL
	cfg.HTTP.Addr = ec.Addr
	cfg.HTTP.CORSOrigin = ec.CORSOrigin
	cfg.Storage.Endpoint = ec.StorageEndpoint
	cfg.Storage.Region = ec.StorageRegion
	cfg.Storage.AccessKeyID = ec.StorageAccessKey
	cfg.Storage.SecretAccessKey = ec.StorageSecretKey
	cfg.Storage.Bucket = ec.StorageBucket
	cfg.Storage.PublicBaseURL = ec.StoragePublicURL
	cfg.Storage.UseSSL = ec.StorageUseSSL
	cfg.QR.Size = ec.QRSize
	cfg.Logging.Level = ec.LogLevel
	cfg.Logging.Format = ec.LogFormat
	cfg.Logging.AddSource = ec.LogAddSource

	db, err := openDB(ec.DBDriver, ec.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	module, err := memoria.New(cfg, memoria.WithBunDB(db))
	if err != nil {
		return err
	}

	handler, err := module.Handler()
	if err != nil {
		return err
	}

	logger := logging.ModuleLogger(module.LoggerProvider(), "memoria.server")

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func openDB(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case "postgres":
		sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case "sqlite3":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", driver)
	}
}

// migrate applies the embedded schema files in lexical order.
func migrate(ctx context.Context, db *bun.DB) error {
	fsys := memoria.GetMigrationsFS()
	entries, err := fsys.ReadDir("data/sql/migrations")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		raw, err := fsys.ReadFile("data/sql/migrations/" + entry.Name())
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return fmt.Errorf("apply %s: %w", entry.Name(), err)
		}
	}
	return nil
}
