package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meinhoongagan/healthy-alternative/config"
	"github.com/meinhoongagan/healthy-alternative/cron"
	"github.com/meinhoongagan/healthy-alternative/db"
	"github.com/meinhoongagan/healthy-alternative/logger"
	"github.com/meinhoongagan/healthy-alternative/middleware"
	"github.com/meinhoongagan/healthy-alternative/queue"
	"github.com/meinhoongagan/healthy-alternative/redis"
	"github.com/meinhoongagan/healthy-alternative/routes"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/meinhoongagan/healthy-alternative/store/memory"
	"github.com/meinhoongagan/healthy-alternative/utils"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if err := run(cfg, zl); err != nil {
		zl.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx := context.Background()

	st, gdb, err := openStore(ctx, cfg, zl)
	if err != nil {
		return err
	}

	sessions, purger, rdb, err := openSessions(ctx, cfg, st, gdb)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	deps := routes.Deps{
		Store:    st,
		Sessions: sessions,
		SessionConfig: middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.IsProduction(),
		},
		RejectOverlap: cfg.Booking.RejectOverlap,
		CORSOrigins:   cfg.Server.CORSOrigins,
		Logger:        zl,
		Ping:          pinger(gdb, rdb),
	}

	mailer := utils.NewMailer(utils.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUser,
		Password: cfg.Email.SMTPPass,
		From:     cfg.Email.SMTPFrom,
	})
	var reminders cron.ReminderSender
	if mailer != nil {
		deps.Notifier = mailer
		reminders = mailer
	} else {
		zl.Warn("SMTP_HOST not set, booking emails are disabled")
	}

	if producer := queue.NewProducer(cfg.Kafka.Broker, cfg.Kafka.Topic, cfg.Kafka.Username, cfg.Kafka.Password, zl); producer != nil {
		defer producer.Close()
		deps.Events = producer
	}

	uploader, err := utils.NewUploader(cfg.Cloudinary.URL)
	if err != nil {
		return fmt.Errorf("cloudinary: %w", err)
	}
	if uploader != nil {
		deps.Uploader = uploader
	}

	scheduler := cron.NewScheduler(st, purger, reminders, zl)
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("cron: %w", err)
	}

	app := routes.NewApp(deps)

	errCh := make(chan error, 1)
	go func() {
		zl.Info("Server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver), zap.String("sessions", cfg.Session.Store))
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zl.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	return app.ShutdownWithContext(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, zl *zap.Logger) (store.Store, *gorm.DB, error) {
	switch cfg.Storage.Driver {
	case "memory":
		zl.Info("Using in-memory store with fixture data")
		return memory.NewSeeded(), nil, nil
	case "postgres":
		if cfg.Storage.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		gdb, err := db.Open(cfg.Storage.DatabaseURL, zl)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Storage.AutoMigrate {
			if err := db.Migrate(gdb); err != nil {
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		if cfg.Storage.SeedFixtures {
			if err := db.Seed(ctx, gdb, zl); err != nil {
				return nil, nil, fmt.Errorf("seed: %w", err)
			}
		}
		return db.NewStore(gdb), gdb, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
}

// openSessions picks the session backend. The purger is nil when the
// backend expires keys on its own.
func openSessions(ctx context.Context, cfg *config.Config, st store.Store, gdb *gorm.DB) (store.Sessions, store.SessionPurger, *goredis.Client, error) {
	switch cfg.Session.Store {
	case "redis":
		rdb, err := redis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("redis: %w", err)
		}
		return redis.NewSessionStore(rdb), nil, rdb, nil
	case "memory":
		mem, ok := st.(*memory.Store)
		if !ok {
			mem = memory.New()
		}
		return mem, mem, nil, nil
	case "database":
		if gdb == nil {
			return nil, nil, nil, errors.New("SESSION_STORE=database requires STORAGE_DRIVER=postgres")
		}
		dbStore := st.(*db.Store)
		return dbStore, dbStore, nil, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.Session.Store)
	}
}

func pinger(gdb *gorm.DB, rdb *goredis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if gdb != nil {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}
		}
		if rdb != nil {
			return rdb.Ping(ctx).Err()
		}
		return nil
	}
}
