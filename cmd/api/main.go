package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	redislock "vet-clinic-api/internal/adapters/lock/redis"
	pg "vet-clinic-api/internal/adapters/storage/postgres"
	"vet-clinic-api/internal/config"
	"vet-clinic-api/internal/domain/appointments"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/router"
)

// @title Vet Clinic API
// @version 1.0
// @description API de la clínica veterinaria: clientes, animales, veterinarios y turnos.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// el logger definitivo puede no existir todavía
		boot := logger.NewFromEnv()
		boot.Fatal().Err(err).Msg("server error")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.AppName,
	})

	opts := router.Options{
		Logger:          &log,
		ReadinessChecks: map[string]router.Check{},
	}

	// Postgres opcional: sin DB_DSN se usa el store en memoria.
	if cfg.UsePostgres() {
		db, err := pg.Open(ctx, cfg.DB.DSN, pg.Options{
			MaxOpenConns: cfg.DB.MaxOpenConns,
			MaxIdleConns: cfg.DB.MaxIdleConns,
		})
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.DB.Migrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
			log.Info().Msg("database schema up to date")
		}

		repos := pg.NewRepositories(db)
		opts.Repositories = &router.Repositories{
			Clients:       repos.Clients,
			Animals:       repos.Animals,
			Veterinarians: repos.Veterinarians,
			Appointments:  repos.Appointments,
		}
		opts.ReadinessChecks["postgres"] = db.PingContext
	} else {
		log.Warn().Msg("DB_DSN not set, using in-memory store")
	}

	// Redis opcional: lock distribuido de slots entre réplicas.
	if cfg.UseRedis() {
		rdb, err := redislock.Connect(ctx, redislock.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()

		opts.SlotGuard = redislock.NewSlotLocker(rdb, cfg.Redis.SlotLockTTL)
		opts.ReadinessChecks["redis"] = redisCheck(rdb)
	} else {
		opts.SlotGuard = appointments.NoopGuard{}
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Env).
			Bool("postgres", cfg.UsePostgres()).
			Bool("redis", cfg.UseRedis()).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return shutdown(srv, cfg.HTTP.ShutdownTimeout, log)
}

func shutdown(srv *http.Server, timeout time.Duration, log zerolog.Logger) error {
	log.Info().Dur("timeout", timeout).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func redisCheck(rdb *goredis.Client) router.Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
