package main

import (
	"context"
	"log"

	"github.com/devfolio-labs/portfolio-backend/config"
	"github.com/devfolio-labs/portfolio-backend/internal/bootstrap"
	"github.com/devfolio-labs/portfolio-backend/internal/media"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/store"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/store/jsonfile"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/store/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)
	ctx := context.Background()

	var (
		st   store.Store
		pool *pgxpool.Pool
	)
	switch cfg.Store.Driver {
	case "postgres":
		pool, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Store.Database.DSN()})
		if err != nil {
			log.Fatalf("store: %v", err)
		}
		defer pool.Close()

		pg := postgres.New(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("store: %v", err)
		}
		st = pg
	default:
		st = jsonfile.New(cfg.Store.FilePath)
	}

	var md media.Service
	if cfg.Media.Configured() {
		md, err = media.NewCloudinary(cfg.Media.CloudName, cfg.Media.APIKey, cfg.Media.APISecret)
		if err != nil {
			log.Fatalf("media: %v", err)
		}
	} else {
		log.Println("[media] cloudinary credentials not set, uploads disabled")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:     "portfolio-backend",
		Version:         cfg.App.Version,
		Store:           st,
		StoreDriver:     cfg.Store.Driver,
		Media:           md,
		UploadFolder:    cfg.Media.UploadFolder,
		DB:              pool,
		AdminEnabled:    cfg.Admin.MutationsEnabled,
		MutationsPerMin: cfg.Admin.MutationsPerMin,
		AllowOrigins:    cfg.Server.AllowOrigins,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
