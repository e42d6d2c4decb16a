package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"log/slog"

	coredatabase "github.com/hackmir/partsbot/core/database"
	"github.com/hackmir/partsbot/core/logger"
	"github.com/hackmir/partsbot/internal/app"
	"github.com/hackmir/partsbot/internal/storage"
	"github.com/hackmir/partsbot/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, relying on environment")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := app.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("adminpanel: load config: %v", err)
	}

	if err := logger.InitLogger(&cfg.Core); err != nil {
		log.Fatalf("adminpanel: init logger: %v", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	db, err := coredatabase.Connect(cfg.Database)
	if err != nil {
		logger.Error(context.Background(), "web", "web.startup", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := coredatabase.RunMigrations(cfg.Database); err != nil {
		logger.Error(context.Background(), "web", "web.startup", slog.String("err", err.Error()))
		os.Exit(1)
	}

	server, err := web.NewServer(storage.NewScrapyardRepo(db), storage.NewPartRepo(db))
	if err != nil {
		logger.Error(context.Background(), "web", "web.startup", slog.String("err", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.AdminPanel.Listen,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info(context.Background(), "web", "web.listen", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "web", "web.listen", slog.String("err", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(context.Background(), "web", "web.shutdown", slog.String("err", err.Error()))
	}
}
