package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"time2gather/core/cache"
	"time2gather/core/config"
	"time2gather/core/database"
	"time2gather/core/logger"
	"time2gather/core/middleware"
	"time2gather/core/server"
	"time2gather/core/storage"
	"time2gather/core/worker"
	"time2gather/modules/meeting"
	"time2gather/modules/meeting/task"

	"github.com/urfave/cli/v2"

	_ "time/tzdata" // meeting timezones are validated with time.LoadLocation
)

// @title time2gather API
// @version 1.0
// @description Scheduling backend: drafts, submissions and grouped results for time2gather meetings.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	app := &cli.App{
		Name:  "time2gather",
		Usage: "Scheduling backend for time2gather meetings.",
		Before: func(c *cli.Context) error {
			cfg, err := config.Init()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(cfg.App.LogFormat, cfg.App.LogLevel)
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			workerCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("Application failed", err)
		os.Exit(1)
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func databaseConfig(cfg *config.Config) database.DatabaseConfig {
	return database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}
}

func redisCache(ctx context.Context, cfg *config.Config) (*cache.RedisCache, error) {
	return cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Usage: "Apply pending migrations before serving."},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Get()
			ctx, stop := signalContext(c.Context)
			defer stop()

			if c.Bool("migrate") {
				if err := database.Migrate(databaseConfig(cfg), false); err != nil {
					return err
				}
			}

			db, err := database.InitDB(databaseConfig(cfg))
			if err != nil {
				return err
			}
			defer db.Close()

			store, err := redisCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			queue := worker.NewClient(cfg.Redis)
			defer queue.Close()

			e := server.New(cfg.App)
			meeting.Init(e, cfg, db, store, task.NewAsynqEnqueuer(queue), middleware.NewMiddleware(cfg.JWT.Secret))

			return server.Run(ctx, e, fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port))
		},
	}
}

func workerCommand() *cli.Command {
	return &cli.Command{
		Name:  "worker",
		Usage: "Process result refresh and archive tasks.",
		Action: func(c *cli.Context) error {
			cfg := config.Get()
			ctx, stop := signalContext(c.Context)
			defer stop()

			store, err := redisCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var objects storage.ObjectStore = storage.NopStore{}
			if cfg.Storage.Enabled {
				objects = storage.NewS3Store(storage.S3Config{
					Bucket:    cfg.Storage.Bucket,
					Region:    cfg.Storage.Region,
					Endpoint:  cfg.Storage.Endpoint,
					AccessKey: cfg.Storage.AccessKey,
					SecretKey: cfg.Storage.SecretKey,
				})
			}

			return worker.Run(ctx, *cfg, meeting.NewTaskHandler(cfg, store, objects))
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply the submission ledger migrations.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "down", Usage: "Roll back one migration instead."},
		},
		Action: func(c *cli.Context) error {
			return database.Migrate(databaseConfig(config.Get()), c.Bool("down"))
		},
	}
}
