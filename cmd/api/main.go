package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"crestline.dev/internal/activity"
	"crestline.dev/internal/auth"
	"crestline.dev/internal/cms"
	"crestline.dev/internal/config"
	"crestline.dev/internal/httpapi"
	"crestline.dev/internal/obs"
	"crestline.dev/internal/ratelimit"
	"crestline.dev/internal/store/memory"
	"crestline.dev/internal/store/pg"
)

var version = "0.3.1"

func main() {
	cfg, err := config.Load()
	if err != nil {
		obs.Logger().WithError(err).Fatal("load config")
	}

	level := logrus.DebugLevel
	if cfg.IsProduction() {
		level = logrus.InfoLevel
	}
	obs.ConfigureLogger(cfg.LogFormat, level)
	obs.Init()
	log := obs.Logger()

	// Persistence: PostgreSQL when a DSN is configured, in-process maps
	// otherwise. The memory stores exist for local development and tests.
	var (
		db     *sql.DB
		stores storeSet
	)
	if cfg.PGDSN != "" {
		db, err = sql.Open("pgx", cfg.PGDSN)
		if err != nil {
			log.WithError(err).Fatal("open database")
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		pgStore := pg.New(db)
		stores = storeSet{
			users:    pgStore.Users,
			projects: pgStore.Projects,
			blogs:    pgStore.Blogs,
			leads:    pgStore.Leads,
			careers:  pgStore.Careers,
			activity: pgStore.Activity,
		}
	} else {
		log.Warn("no database configured, using in-memory stores")
		stores = storeSet{
			users:    memory.NewUserStore(),
			projects: memory.NewProjectStore(),
			blogs:    memory.NewBlogStore(),
			leads:    memory.NewLeadStore(),
			careers:  memory.NewCareerStore(),
			activity: memory.NewActivityStore(),
		}
	}

	// Rate limit counters: shared in Redis when configured, per-process
	// otherwise.
	var counters ratelimit.CounterStore = ratelimit.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.WithError(err).Fatal("connect redis")
		}
		counters = ratelimit.NewRedisStore(rdb)
	}
	limiter, err := ratelimit.New(counters, cfg.RateLimitMax, cfg.RateLimitWindow)
	if err != nil {
		log.WithError(err).Fatal("build rate limiter")
	}

	codec, err := auth.NewTokenCodec(cfg.JWTSecret, auth.WithTTL(cfg.TokenTTL))
	if err != nil {
		log.WithError(err).Fatal("build token codec")
	}

	userSvc, err := cms.NewUserService(stores.users)
	if err != nil {
		log.WithError(err).Fatal("build user service")
	}
	projectSvc, err := cms.NewProjectService(stores.projects)
	if err != nil {
		log.WithError(err).Fatal("build project service")
	}
	blogSvc, err := cms.NewBlogService(stores.blogs)
	if err != nil {
		log.WithError(err).Fatal("build blog service")
	}
	leadSvc, err := cms.NewLeadService(stores.leads)
	if err != nil {
		log.WithError(err).Fatal("build lead service")
	}
	careerSvc, err := cms.NewCareerService(stores.careers)
	if err != nil {
		log.WithError(err).Fatal("build career service")
	}

	ready := func(ctx context.Context) error {
		if db != nil {
			return db.PingContext(ctx)
		}
		return nil
	}

	api := httpapi.New(httpapi.Options{
		Guard:       httpapi.NewGuard(codec),
		Users:       userSvc,
		Projects:    projectSvc,
		Blogs:       blogSvc,
		Leads:       leadSvc,
		Careers:     careerSvc,
		Activity:    activity.NewEmitter(stores.activity, log),
		Limiter:     limiter,
		FrontendURL: cfg.FrontendURL,
		Version:     version,
		Ready:       ready,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.GRPCAddr != "" {
		go func() {
			log.WithField("addr", cfg.GRPCAddr).Info("grpc health server listening")
			if err := httpapi.ServeGRPCHealth(ctx, cfg.GRPCAddr, ready); err != nil {
				log.WithError(err).Error("grpc health server stopped")
			}
		}()
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr,
			"version": version,
			"env":     cfg.Env,
		}).Info("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	if db != nil {
		_ = db.Close()
	}
	log.Info("stopped")
}

// storeSet holds one implementation per persistence interface so main can
// wire either backend through the same code path.
type storeSet struct {
	users    cms.UserStore
	projects cms.ProjectStore
	blogs    cms.BlogStore
	leads    cms.LeadStore
	careers  cms.CareerStore
	activity activity.Store
}
