// Package server is the HTTP transport: echo routes over the answer
// pipeline, with per-IP rate limiting, Prometheus metrics and a small
// JWT-protected admin surface.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/config"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/knowledge"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/pipeline"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/ratelimit"
	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/internal/telemetry"
)

// Server bundles the transport dependencies. Build with New, start with
// Run.
type Server struct {
	cfg     *config.Config
	pipe    *pipeline.Pipeline
	corpus  *knowledge.Corpus
	metrics *telemetry.Metrics
	limiter ratelimit.Limiter
	logger  *log.Logger

	echo *echo.Echo
}

// New wires the echo instance, middleware and routes. limiter may be nil
// to disable rate limiting (tests).
func New(cfg *config.Config, pipe *pipeline.Pipeline, corpus *knowledge.Corpus, metrics *telemetry.Metrics, limiter ratelimit.Limiter) *Server {
	s := &Server{
		cfg:     cfg,
		pipe:    pipe,
		corpus:  corpus,
		metrics: metrics,
		limiter: limiter,
		logger:  log.New(log.Writer(), "[HTTP] ", log.LstdFlags),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		s.logger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", s.healthz)
	e.POST("/query", s.query)
	e.GET("/stats", s.stats)
	e.POST("/feedback", s.feedback)
	e.GET("/offline-pack", s.offlinePack)
	if cfg.Telemetry.Enabled && metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	api := e.Group("/api")
	api.POST("/auth/token", s.token)

	admin := api.Group("/analytics")
	admin.Use(authMiddleware([]byte(cfg.Server.JWTSecret)))
	admin.GET("", s.analytics)

	s.echo = e
	return s
}

// Run blocks serving HTTP on the configured listen address.
func (s *Server) Run(addr string) error {
	if addr == "" {
		addr = s.cfg.General.Listen
	}
	if addr == "" {
		addr = ":8000"
	}
	if addr[0] != ':' && !hasHost(addr) {
		addr = ":" + addr
	}
	s.logger.Printf("listening on %s", addr)
	return s.echo.Start(addr)
}

func hasHost(addr string) bool {
	for _, r := range addr {
		if r == ':' {
			return true
		}
	}
	return false
}

// NewLimiter picks the limiter backend from config: Redis when a host is
// configured and reachable, otherwise per-process memory.
func NewLimiter(cfg config.RateLimitConfig, logger *log.Logger) ratelimit.Limiter {
	if cfg.Redis.Host == "" {
		return ratelimit.NewMemory(cfg.Max, cfg.Window)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if logger != nil {
		logger.Printf("rate limiter backed by redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
	}
	return ratelimit.NewRedis(client, cfg.Max, cfg.Window)
}
