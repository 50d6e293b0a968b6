// Package httpapi is the thin HTTP surface over the report pipeline.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/silentpro/dashboard/internal/catalog"
	"github.com/silentpro/dashboard/internal/dependency"
	"github.com/silentpro/dashboard/internal/ratelimit"
)

// Config is the configuration for the http server.
type Config struct {
	Port             string        `mapstructure:"port"`
	Address          string        `mapstructure:"address"`
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	StaticDir        string        `mapstructure:"static_dir"`
	ReportRateMax    int           `mapstructure:"report_rate_max"`
	ReportRateWindow time.Duration `mapstructure:"report_rate_window"`
}

// Server is the http server.
type Server struct {
	hs      *http.Server
	c       *Config
	reports dependency.ReportRunner
	cat     *catalog.Catalog
	limiter *ratelimit.Limiter
	done    chan struct{}
}

// New creates a new server. Report runs are rate limited per caller IP.
func New(c *Config, reports dependency.ReportRunner, cat *catalog.Catalog) *Server {
	if c.ReportRateMax == 0 {
		c.ReportRateMax = 7
	}
	if c.ReportRateWindow == 0 {
		c.ReportRateWindow = 15 * time.Second
	}
	return &Server{
		c:       c,
		reports: reports,
		cat:     cat,
		limiter: ratelimit.NewLimiter(c.ReportRateWindow, c.ReportRateMax),
		done:    make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{http.MethodHead, http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/orders", s.handleReport)
	r.Get("/api/products", s.handleProducts)

	if s.c.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.c.StaticDir))
		r.Handle("/static/*", http.StripPrefix("/static/", fs))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, s.c.StaticDir+"/index.html")
		})
	}

	return r
}

// Start starts the http server.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, "http server listening",
			slog.String("addr", addr),
		)
		if err := s.hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()),
			)
		}
	}()
	return nil
}

// Stop shuts the http server down gracefully and ends the rate limiter's
// background cleanup.
func (s *Server) Stop(ctx context.Context) error {
	s.limiter.Stop()
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}
