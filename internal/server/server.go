package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/thesanatorium/website/app/booking"
	"github.com/thesanatorium/website/app/catalog"
	"github.com/thesanatorium/website/app/pages"
	"github.com/thesanatorium/website/app/services"
	"github.com/thesanatorium/website/internal/config"
	"github.com/thesanatorium/website/internal/database"
	"github.com/thesanatorium/website/internal/metrics"
	"github.com/thesanatorium/website/internal/web"
	"github.com/thesanatorium/website/models"
	"gorm.io/gorm"
)

// Server serves the website over HTTP.
type Server struct {
	cfg    *config.Config
	log    *zerolog.Logger
	server *http.Server
}

func New(cfg *config.Config, db *gorm.DB, log *zerolog.Logger) (*Server, error) {
	handler, err := NewRouter(cfg, db, log)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg: cfg,
		log: log,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:           handler,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
		},
	}, nil
}

// NewRouter builds the full route table with its middleware chain.
func NewRouter(cfg *config.Config, db *gorm.DB, log *zerolog.Logger) (http.Handler, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	productsRepo := models.NewProductsRepository(db)
	servicesRepo := models.NewServicesRepository(db)
	bookingsRepo := models.NewBookingsRepository(db)

	secure := strings.EqualFold(cfg.App.Environment, "production")
	flashes := web.NewFlashStore(cfg.Session.Secret, cfg.Session.Name, secure)
	limiter := web.NewRateLimiter(cfg.HTTP.RateLimit.RPS, cfg.HTTP.RateLimit.Burst)

	catalogHandler := catalog.NewCatalogHandler(productsRepo, renderer)
	serviceHandler := services.NewServiceHandler(servicesRepo, renderer)
	bookingHandler := booking.NewBookingHandler(servicesRepo, bookingsRepo, flashes, renderer)
	pageHandler := pages.NewPageHandler(renderer)

	r := chi.NewRouter()
	r.Use(web.RequestLogger(log))
	r.Use(web.Recoverer)

	r.Get("/", catalogHandler.HandleHome)
	r.Get("/about", pageHandler.HandleAbout)
	r.Get("/services", serviceHandler.HandleList)
	r.Get("/products", catalogHandler.HandleProducts)
	r.Get("/booking", bookingHandler.HandleGet)
	r.With(limiter.Middleware).Post("/booking", bookingHandler.HandlePost)
	r.Get("/contact", pageHandler.HandleContact)

	r.Handle("/static/*", web.StaticHandler())
	r.Get("/healthz", healthHandler(db))
	if cfg.Monitoring.PrometheusEnabled {
		r.Handle("/metrics", metrics.Handler())
	}
	r.NotFound(pageHandler.HandleNotFound)

	return r, nil
}

func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := database.Ping(ctx, db); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable\n"))
			return
		}
		_, _ = w.Write([]byte("ok\n"))
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.log.Info().Msg("HTTP server stopped")
	return nil
}
