package main

import (
	"context"
	"log"

	"spacenotes-be/internal/bootstrap"
	"spacenotes-be/internal/config"
	"spacenotes-be/internal/server"
	"spacenotes-be/internal/tracer"
	"spacenotes-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()
	if container.NatsPub != nil {
		defer container.NatsPub.Close()
	}

	// 4. Start Background Jobs
	container.Cron.Start()
	defer container.Cron.Stop()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
