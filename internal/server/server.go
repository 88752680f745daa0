// Package server exposes the back-office HTTP API: order quoting and
// submission, promo resolution, delivery zone lookup, voice drafts, the menu
// and payment integration management.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"restopos/internal/events"
	"restopos/internal/geocode"
	"restopos/internal/logger"
	"restopos/internal/models"
	"restopos/internal/repositories"
	"restopos/internal/voice"
)

// Repositories bundles the storage dependencies the handlers need.
type Repositories struct {
	Restaurants repositories.RestaurantRepository
	Products    repositories.ProductRepository
	Zones       repositories.ZoneRepository
	Discounts   repositories.DiscountRepository
	Surcharges  repositories.SurchargeRepository
	Orders      repositories.OrderRepository
	Payments    repositories.PaymentIntegrationRepository
	Customers   repositories.CustomerRepository
}

type Server struct {
	cfg       *models.Config
	log       *logger.Logger
	repos     Repositories
	publisher *events.Publisher
	geocoder  *geocode.Client
	assistant *voice.Assistant
	pool      *pgxpool.Pool
}

func New(cfg *models.Config, log *logger.Logger, repos Repositories, publisher *events.Publisher, geocoder *geocode.Client, assistant *voice.Assistant, pool *pgxpool.Pool) *Server {
	return &Server{
		cfg:       cfg,
		log:       log,
		repos:     repos,
		publisher: publisher,
		geocoder:  geocoder,
		assistant: assistant,
		pool:      pool,
	}
}

// Routes wires every endpoint onto a mux. Method checks happen inside the
// handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/orders", s.withLogging(s.CreateOrder))
	mux.HandleFunc("/orders/", s.withLogging(s.OrderByID))
	mux.HandleFunc("/orders/quote", s.withLogging(s.QuoteOrder))
	mux.HandleFunc("/orders/promo", s.withLogging(s.ResolvePromo))
	mux.HandleFunc("/orders/voice", s.withLogging(s.VoiceDraft))
	mux.HandleFunc("/delivery/resolve", s.withLogging(s.ResolveDelivery))
	mux.HandleFunc("/restaurants", s.withLogging(s.GetRestaurants))
	mux.HandleFunc("/promotions", s.withLogging(s.GetPromotions))
	mux.HandleFunc("/menu", s.withLogging(s.GetMenu))
	mux.HandleFunc("/menu/", s.withLogging(s.GetRestaurantMenu))
	mux.HandleFunc("/payments/integrations", s.withLogging(s.PaymentIntegrations))
	mux.HandleFunc("/payments/integrations/", s.withLogging(s.PaymentIntegrationByID))
	mux.HandleFunc("/health", s.withLogging(s.HealthCheck))

	return mux
}

// ListenAndServe runs the HTTP server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.HTTPAddr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	if s.pool != nil {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.pool.Ping(pingCtx); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		} else {
			status["database"] = "ok"
		}
	}

	writeJSON(w, code, status)
}
