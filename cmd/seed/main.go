package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/farellandr/fyyur/config"
	"github.com/farellandr/fyyur/internal/logger"
	"github.com/farellandr/fyyur/internal/middleware"
	"github.com/farellandr/fyyur/internal/seed"
	"github.com/farellandr/fyyur/internal/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	app := flag.String("app", config.AppFyyur, "app to seed: fyyur or trivia")
	file := flag.String("file", "", "YAML fixture file (defaults to the embedded fixture)")
	adminEmail := flag.String("admin-email", "", "trivia only: create an admin account; password is read from ADMIN_PASSWORD")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.LoadConfig(*app)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog := logger.NewLogger(cfg.LogLevel, zap.String("app", cfg.App), zap.String("cmd", "seed"))
	defer func() { _ = zlog.Sync() }()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	data, err := seed.ReadFixture(*app, *file)
	if err != nil {
		zlog.Fatal("failed to read fixture", zap.Error(err))
	}

	res, err := seed.Load(db, *app, data)
	if err != nil {
		zlog.Fatal("failed to load fixture", zap.Error(err))
	}

	if *app == config.AppTrivia && *adminEmail != "" {
		created, err := seed.EnsureAdmin(db, *adminEmail, os.Getenv("ADMIN_PASSWORD"))
		if err != nil {
			zlog.Fatal("failed to create admin", zap.Error(err))
		}
		zlog.Info("admin account", zap.String("email", *adminEmail), zap.Bool("created", created))
	}

	if *app == config.AppTrivia {
		if rdb := config.NewRedisClient(cfg); rdb != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := middleware.InvalidateCache(ctx, rdb, server.CategoriesCachePrefix); err != nil {
				zlog.Warn("failed to invalidate categories cache", zap.Error(err))
			}
			cancel()
			_ = rdb.Close()
		}
	}

	zlog.Info("fixtures loaded",
		zap.String("app", *app),
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
	)
}
