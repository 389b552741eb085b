package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/advisordesk/advisordesk/internal/asset"
	"github.com/advisordesk/advisordesk/internal/cache"
	"github.com/advisordesk/advisordesk/internal/config"
	adHttp "github.com/advisordesk/advisordesk/internal/http"
	assetHandler "github.com/advisordesk/advisordesk/internal/http/asset"
	leadHandler "github.com/advisordesk/advisordesk/internal/http/lead"
	marketHandler "github.com/advisordesk/advisordesk/internal/http/market"
	txHandler "github.com/advisordesk/advisordesk/internal/http/transaction"
	"github.com/advisordesk/advisordesk/internal/lead"
	"github.com/advisordesk/advisordesk/internal/market"
	"github.com/advisordesk/advisordesk/internal/source"
	"github.com/advisordesk/advisordesk/internal/source/file"
	"github.com/advisordesk/advisordesk/internal/source/postgres"
	"github.com/advisordesk/advisordesk/internal/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	snapshots, cleanup, err := openSource(cfg)
	if err != nil {
		slog.Error("failed to open data source", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	store := cache.New(cfg.Cache.TTL)

	var (
		transactionService = transaction.NewService(snapshots, store)
		assetService       = asset.NewService(snapshots, store)
		leadService        = lead.NewService(snapshots, store, nil)
		marketService      = market.NewService(snapshots, store)
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		assetH       = assetHandler.NewHandler(assetService)
		leadH        = leadHandler.NewHandler(leadService)
		marketH      = marketHandler.NewHandler(marketService)
	)

	router := adHttp.New(transactionH, assetH, leadH, marketH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr, "source", cfg.Source.Kind)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openSource(cfg *config.Config) (source.Sources, func(), error) {
	switch cfg.Source.Kind {
	case "postgres":
		db, err := postgres.Open(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		return postgres.New(db), func() { db.Close() }, nil
	case "file":
		return file.New(cfg.Source.DataDir), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}
