// Command server runs the response code registry over HTTP.
//
// @title           Response Codes API
// @version         1.0
// @description     Registry of named HTTP response codes. Every response, success or error, is a {status, message, data} envelope.
// @BasePath        /api/v1
// @schemes         http https
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-response-codes/docs"
	"github.com/tbourn/go-response-codes/internal/config"
	httpapi "github.com/tbourn/go-response-codes/internal/http"
	"github.com/tbourn/go-response-codes/internal/http/middleware"
	"github.com/tbourn/go-response-codes/internal/observability"
	"github.com/tbourn/go-response-codes/internal/repo"
	"github.com/tbourn/go-response-codes/internal/responses"
	"github.com/tbourn/go-response-codes/internal/seed"
	"github.com/tbourn/go-response-codes/internal/services"
	"github.com/tbourn/go-response-codes/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	shutdownTimeout = 10 * time.Second
	purgeEvery      = 15 * time.Minute
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.MustLoad()
	ver := sysutil.FirstNonEmpty(os.Getenv("SERVICE_VERSION"), version)

	sysutil.SetLogLevel(cfg.LogLevel)
	log.Logger = sysutil.NewLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, ver)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	var db *gorm.DB
	if cfg.PersistCodes {
		db, err = repo.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
		}
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("migrate failed")
		}
	}

	reg := responses.New(responses.WithObserver(middleware.ObserveResponse))
	svc := services.NewCodeService(reg, db, log.Logger)

	if n, err := svc.Restore(ctx); err != nil {
		log.Fatal().Err(err).Msg("restore codes failed")
	} else if n > 0 {
		log.Info().Int("codes", n).Msg("restored persisted codes")
	}
	if cfg.CodesFile != "" {
		codes, err := seed.LoadFile(cfg.CodesFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.CodesFile).Msg("load codes file failed")
		}
		n := svc.Seed(ctx, codes)
		log.Info().Int("codes", n).Str("file", cfg.CodesFile).Msg("seeded codes")
	}

	docs.SwaggerInfo.BasePath = cfg.APIBasePath
	docs.SwaggerInfo.Version = ver

	r := gin.New()
	httpapi.RegisterRoutes(r, svc, cfg)

	if db != nil {
		go purgeIdempotency(ctx, db)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", ver).
			Int("codes", reg.Len()).
			Bool("persist", db != nil).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// purgeIdempotency drops expired idempotency records until ctx is done.
func purgeIdempotency(ctx context.Context, db *gorm.DB) {
	t := time.NewTicker(purgeEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now.UTC())
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency records")
				continue
			}
			if n > 0 {
				log.Debug().Int64("purged", n).Msg("purged idempotency records")
			}
		}
	}
}
