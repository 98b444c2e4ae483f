package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"benchfuse/adapters/postgres"
	"benchfuse/internal/api"
	"benchfuse/internal/config"
	"benchfuse/internal/container"
	"benchfuse/ui"
)

func main() {
	// Optional .env for local development; production injects real env vars.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("building container: %v", err)
	}
	defer c.Close()

	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("connecting to database: %v", err)
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("preparing database schema: %v", err)
		}
		if err := c.InitWithDatabase(db); err != nil {
			log.Fatalf("initializing database components: %v", err)
		}
	} else {
		log.Printf("DATABASE_URL not set; run history disabled")
	}

	ops := api.NewOpsServer(c.Orchestrator)
	go func() {
		if err := ops.Start(cfg.Server.OpsPort); err != nil {
			log.Fatalf("ops server failed: %v", err)
		}
	}()

	server := ui.NewServer(cfg.Server, c.Orchestrator, c.RunRepo)
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
