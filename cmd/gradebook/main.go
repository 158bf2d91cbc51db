package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"gradebook/internal/cli"
	"gradebook/internal/config"
	"gradebook/internal/logging"
	"gradebook/internal/storage"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	app := cli.NewApp(cfg, logger, db)
	app.Run(ctx)
}
