// Package httpapi wires the HTTP transport (Gin) to the code service,
// middleware and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, redacted logging, panic recovery, metrics,
// compression, idempotency, rate limiting, CORS and security headers.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/tbourn/go-response-codes/docs" // swagger spec
	"github.com/tbourn/go-response-codes/internal/config"
	"github.com/tbourn/go-response-codes/internal/http/handlers"
	"github.com/tbourn/go-response-codes/internal/http/middleware"
	"github.com/tbourn/go-response-codes/internal/repo"
	"github.com/tbourn/go-response-codes/internal/services"
)

var (
	corsMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey}
)

// RegisterRoutes attaches all middleware and HTTP endpoints to r. It also
// registers the host codes the HTTP layer writes (conflict, 405, 413, 429)
// when they are not already present in svc.Registry.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger + Logger: access logs with PII scrubbing
//  4. Recovery: panics become serverError.internalServerError
//  5. Body size limiter
//  6. Metrics
//  7. Gzip
//  8. Idempotency (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per IP, bypass on replay)
//  10. CORS and security headers
func RegisterRoutes(r *gin.Engine, svc *services.CodeService, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	reg := svc.Registry
	middleware.RegisterHostCodes(reg)

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
		MaskQuery:   []string{"message"},
	}))
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery(reg))
	r.Use(limitBody(cfg.MaxBodyBytes))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/swagger/"})))

	var lookup middleware.IdempotencyLookup
	if svc.DB != nil {
		db := svc.DB
		lookup = func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
			_, err := repo.GetIdempotency(ctx, db, scope, key, now)
			return err == nil, nil
		}
	}
	r.Use(middleware.Idempotency(middleware.IdempotencyOptions{MaxLen: 200}, lookup, reg))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP(), reg)
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, reg, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, reg, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(svc, reg, svc.DB, cfg.IdempotencyTTL)
	r.GET("/health", h.Health)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/categories", h.ListCategories)

		api.GET("/codes", h.ListCodes)
		api.GET("/search", h.SearchCodes)
		api.POST("/codes", h.RegisterCode)
		api.GET("/codes/:category/:code", h.DescribeCode)
		api.DELETE("/codes/:category/:code", h.RemoveCode)

		api.GET("/respond/:category/:code", h.Respond)
		api.POST("/respond/:category/:code", h.Respond)
	}
}

// corsMiddleware allows every origin when none is configured, otherwise
// echoes allowlisted origins.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// ACAO even without an Origin header, for health checks
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins: true,
				AllowMethods:    corsMethods,
				AllowHeaders:    corsHeaders,
				ExposeHeaders:   []string{"X-Request-ID", "ETag", "Idempotency-Replayed", "Content-Length"},
				MaxAge:          12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  corsMethods,
			AllowHeaders:  corsHeaders,
			ExposeHeaders: []string{"X-Request-ID", "ETag", "Idempotency-Replayed", "Content-Length"},
			MaxAge:        12 * time.Hour,
		}),
	}
}

// limitBody caps request bodies with http.MaxBytesReader; values <= 0
// disable the cap.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
