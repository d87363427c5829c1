package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/need-mission/site-api/internal/adapters/httpapi"
	memprogramrepo "github.com/need-mission/site-api/internal/adapters/memory/programrepo"
	memsubmissionrepo "github.com/need-mission/site-api/internal/adapters/memory/submissionrepo"
	postgres "github.com/need-mission/site-api/internal/adapters/postgres"
	"github.com/need-mission/site-api/internal/adapters/postgres/migrate"
	pgprogramrepo "github.com/need-mission/site-api/internal/adapters/postgres/programrepo"
	pgsubmissionrepo "github.com/need-mission/site-api/internal/adapters/postgres/submissionrepo"
	"github.com/need-mission/site-api/internal/app/adminauth"
	"github.com/need-mission/site-api/internal/app/intake"
	"github.com/need-mission/site-api/internal/app/programs"
	"github.com/need-mission/site-api/internal/platform/auth/admintoken"
	platformclock "github.com/need-mission/site-api/internal/platform/clock"
	"github.com/need-mission/site-api/internal/platform/config"
	"github.com/need-mission/site-api/internal/platform/logging"
	programrepoport "github.com/need-mission/site-api/internal/ports/out/programrepo"
	submissionrepoport "github.com/need-mission/site-api/internal/ports/out/submissionrepo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("invalid config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		_, _ = os.Stderr.WriteString("invalid logging config: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.UsesDefaultCredentials() {
		log.Warn("using default admin credentials or JWT secret; set ADMIN_EMAIL, ADMIN_PASSWORD and JWT_SECRET")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clk := platformclock.NewSystemClock()

	var (
		submissions submissionrepoport.Repository
		programList programrepoport.Repository
		cleanup     func()
	)
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		if cfg.MigrateOnStart {
			if err := migrate.Run(cfg.DatabaseURL, migrate.DirectionUp); err != nil {
				log.Fatal("migrate up", zap.Error(err))
			}
			log.Info("migrations applied")
		}
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
			ConnectTimeout:  cfg.DBConnectTimeout,
			OnRetry: func(err error, next time.Duration) {
				log.Warn("database not ready, retrying", zap.Error(err), zap.Duration("next", next))
			},
		})
		if err != nil {
			log.Fatal("connect postgres", zap.Error(err))
		}
		cleanup = pool.Close

		submissions = pgsubmissionrepo.NewRepo(pool)
		programList = pgprogramrepo.NewRepo(pool)
	default:
		log.Warn("using in-memory storage; data is lost on restart")
		submissions = memsubmissionrepo.NewRepo()
		programList = memprogramrepo.NewRepo()
	}
	if cleanup != nil {
		defer cleanup()
	}

	codec := admintoken.NewWithOptions(cfg.JWTSecret, adminauth.TokenTTL, clk)
	api := httpapi.NewServer(
		intake.NewService(submissions, clk),
		adminauth.NewService(cfg.AdminIdentity, codec),
		programs.NewService(programList, clk),
		log,
	)

	opts := httpapi.RouterOptions{
		Log:            log,
		Gate:           adminauth.NewGate(codec),
		AllowedOrigins: cfg.AllowedOrigins(),
		BodyLimitBytes: cfg.BodyLimitBytes,
	}
	if cfg.ServeStatic {
		opts.StaticDir = cfg.StaticDir
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(api, opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("api listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.StorageBackend),
			zap.Bool("static", cfg.ServeStatic),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
}
