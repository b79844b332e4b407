// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/psyhelp/internal/auth"
	"github.com/olegiv/psyhelp/internal/config"
	"github.com/olegiv/psyhelp/internal/handler"
	"github.com/olegiv/psyhelp/internal/i18n"
	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/logging"
	"github.com/olegiv/psyhelp/internal/middleware"
	"github.com/olegiv/psyhelp/internal/scheduler"
	"github.com/olegiv/psyhelp/internal/service"
	"github.com/olegiv/psyhelp/internal/session"
	"github.com/olegiv/psyhelp/internal/store"
	"github.com/olegiv/psyhelp/internal/transfer"
	"github.com/olegiv/psyhelp/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "psyhelp - psychological help request desk\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PSYHELP_SESSION_SECRET  Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PSYHELP_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PSYHELP_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PSYHELP_STORAGE         Storage backend: memory|sqlite|redis (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PSYHELP_DB_PATH         SQLite database path (default: ./data/psyhelp.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PSYHELP_DB_MAX_CONNS    SQLite connection pool size (default: 10)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PSYHELP_REDIS_URL       Redis URL for the redis backend\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PSYHELP_VISITOR_TICK    Visitor counter cron spec, off to disable (default: @every 5s)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PSYHELP_DO_SEED         Seed demo data on start (default: true)\n")
	}

	flag.Parse()

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	logger := slog.New(logging.NewRedactHandler(textHandler))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	ctx := context.Background()

	var db *sql.DB
	if cfg.NeedsSQL() {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		slog.Info("initializing database", "path", cfg.DBPath)
		dbCfg := store.DefaultDBConfig()
		dbCfg.MaxOpenConns = cfg.DBMaxConns
		dbCfg.MaxIdleConns = max(1, cfg.DBMaxConns/2)
		db, err = store.NewDBWithConfig(cfg.DBPath, dbCfg)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}()

		if err := store.Migrate(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database ready")
	}

	kvStore, err := kv.New(ctx, cfg.KV(), db, logger)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() {
		if err := kvStore.Close(); err != nil {
			slog.Error("error closing storage", "error", err)
		}
	}()

	database := store.New(kvStore, store.WithLogger(logger))
	if cfg.DoSeed {
		if err := database.Initialize(ctx); err != nil {
			return fmt.Errorf("seeding storage: %w", err)
		}
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	sessions := session.NewScsSession(sessionManager)

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()

	sched := scheduler.New(database, cfg.VisitorSpec(), logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	router := handler.NewRouter(handler.Deps{
		DB:              database,
		Store:           kvStore,
		SessionManager:  sessionManager,
		Sessions:        sessions,
		Auth:            auth.NewService(database, sessions, logger),
		Requests:        service.NewRequestService(database, logger),
		Exporter:        transfer.NewExporter(database, logger),
		Importer:        transfer.NewImporter(database, logger),
		LoginProtection: loginProtection,
		CSRF:            middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()),
		Version:         info,
		RequestTimeout:  cfg.RequestTimeout,
		RequestLogger:   cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "storage", cfg.Storage, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
