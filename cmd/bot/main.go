package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/lib/pq"

	"github.com/sofiko-bakery/consultant-bot/internal/bot"
	"github.com/sofiko-bakery/consultant-bot/internal/catalog"
	"github.com/sofiko-bakery/consultant-bot/internal/health"
	"github.com/sofiko-bakery/consultant-bot/internal/idempotency"
	"github.com/sofiko-bakery/consultant-bot/internal/middleware"
	"github.com/sofiko-bakery/consultant-bot/internal/ratelimit"
	"github.com/sofiko-bakery/consultant-bot/internal/reminder"
	"github.com/sofiko-bakery/consultant-bot/internal/session"
	"github.com/sofiko-bakery/consultant-bot/pkg/config"
	"github.com/sofiko-bakery/consultant-bot/pkg/graceful"
	"github.com/sofiko-bakery/consultant-bot/pkg/logger"
	"github.com/sofiko-bakery/consultant-bot/pkg/metrics"
	redispkg "github.com/sofiko-bakery/consultant-bot/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		return err
	}

	log := logger.New(logger.Options{
		Level:         cfg.Log.Level,
		Format:        cfg.Log.Format,
		File:          cfg.Log.File,
		MaxSizeMB:     cfg.Log.MaxSizeMB,
		MaxBackups:    cfg.Log.MaxBackups,
		MaxAgeDays:    cfg.Log.MaxAgeDays,
		SentryEnabled: cfg.Sentry.Enabled,
	})
	slog.SetDefault(log)

	log.Info("starting bakery consultant bot",
		slog.String("env", cfg.AppEnv),
		slog.String("mode", cfg.Bot.Mode),
		slog.String("http_port", cfg.Server.Port),
	)

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			log.Error("failed to initialize sentry", slog.Any("error", err))
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	session.RegisterTransitionRecorder(metrics.RecordStateTransition)

	var redisClient *redispkg.Client
	if cfg.Redis.Enabled {
		redisClient, err = redispkg.New(ctx, redispkg.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Error("failed to connect to redis", slog.Any("error", err))
			return err
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				log.Error("error closing redis client", slog.Any("error", cerr))
			}
		}()
	}

	var cat catalog.Catalog = catalog.NewStatic()
	var db *sql.DB
	if cfg.Database.Enabled {
		db, err = sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Error("failed to open database", slog.Any("error", err))
			return err
		}
		defer func() {
			if cerr := db.Close(); cerr != nil {
				log.Error("error closing database", slog.Any("error", cerr))
			}
		}()

		if err := db.PingContext(ctx); err != nil {
			log.Error("failed to ping database", slog.Any("error", err))
			return err
		}

		cat = catalog.NewPostgres(db, log)
		log.Info("using postgres catalog")
	}

	notifier := bot.NewTelebotNotifier()

	var scheduler reminder.Scheduler
	if cfg.Redis.Enabled {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}

		asynqScheduler := reminder.NewAsynqScheduler(redisOpt, log)
		defer func() {
			if cerr := asynqScheduler.Close(); cerr != nil {
				log.Error("error closing reminder scheduler", slog.Any("error", cerr))
			}
		}()

		worker := reminder.NewWorker(redisOpt, notifier, log)
		worker.Run()
		defer worker.Shutdown()

		scheduler = asynqScheduler
	} else {
		memScheduler := reminder.NewMemoryScheduler(notifier, log)
		defer memScheduler.Stop()
		scheduler = memScheduler
	}

	var idemStore idempotency.Store
	if redisClient != nil {
		idemStore = idempotency.NewRedisStore(redisClient.Client, log)

		cleaner := idempotency.NewCleaner(redisClient.Client, log, time.Hour)
		go cleaner.Run(ctx)
	} else {
		idemStore = idempotency.NewMemoryStore()
	}
	idemManager := idempotency.NewManager(idemStore, log)

	var rateLimitMw *middleware.RateLimitMiddleware
	if cfg.Rate.Enabled {
		var limiter ratelimit.Limiter
		if redisClient != nil {
			limiter = ratelimit.NewRedisLimiter(redisClient.Client, log)

			cleaner := ratelimit.NewCleaner(redisClient.Client, log, 10*time.Minute)
			go cleaner.Run(ctx)
		} else {
			limiter = ratelimit.NewMemoryLimiter(log)
		}

		rateLimitMw = middleware.NewRateLimitMiddleware(limiter, cfg.Rate.Limit, cfg.Rate.Window, log)
	}

	store := session.NewStore(log)
	machine := session.NewMachine(cat, scheduler, cfg.Reminder.Delay, log)

	b, err := bot.New(*cfg, log, store, machine, idemManager, rateLimitMw)
	if err != nil {
		log.Error("failed to initialize bot", slog.Any("error", err))
		return err
	}
	notifier.Bind(b.Telebot())

	checker := health.NewChecker(log)
	checker.AddCheck("telegram", health.NewTelegramChecker(b.Telebot()))
	if db != nil {
		checker.AddCheck("database", health.NewDBChecker(db))
	}
	if redisClient != nil {
		checker.AddCheck("redis", health.NewRedisChecker(redisClient.Client))
	}

	srv := graceful.NewServer(log, &http.Server{
		Addr:    cfg.Server.Port,
		Handler: logger.Middleware(newHTTPMux(checker)),
	}, cfg.Server.ShutdownTimeout)

	go func() {
		if err := srv.ListenAndServe(ctx); err != nil {
			log.Error("http server error", slog.Any("error", err))
		}
	}()

	config.Watch(v, log, func(updated config.Config) {
		log.Info("configuration reloaded", slog.String("env", updated.AppEnv))
	})

	go b.Start()
	log.Info("bot is running")

	<-ctx.Done()

	log.Info("shutting down...")
	b.Stop()

	return nil
}

func newHTTPMux(checker *health.Checker) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		results := checker.Check(r.Context())

		status := http.StatusOK
		for _, result := range results {
			if result != "OK" {
				status = http.StatusServiceUnavailable
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(results)
	})

	return mux
}
