package app

import (
	"context"
	"log"
	"os"
	"time"

	"recovery-connect/internal/config"
	"recovery-connect/internal/database"
	"recovery-connect/internal/database/migration"
	dbpostgres "recovery-connect/internal/database/postgres"
	"recovery-connect/internal/infrastructure/cache"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MigrationsDir != "" {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	redisCache := cache.NewRedis(log.New(os.Stdout, "", log.LstdFlags))

	return &Container{Config: cfg, DB: db, Cache: redisCache}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
