package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shoplist-app/shoplist/internal/api"
	"github.com/shoplist-app/shoplist/internal/config"
	"github.com/shoplist-app/shoplist/internal/storage/sqlite"
	"github.com/shoplist-app/shoplist/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	router := api.SetupRouter(store, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr, "environment", cfg.Environment)
	if err := router.Run(addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
