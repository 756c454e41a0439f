// Package server is the storefront REST API.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"momo-store/services"
	"momo-store/store"
)

type Server struct {
	store  store.Store
	charge int64
	now    func() time.Time
	logger zerolog.Logger
}

type Option func(*Server)

func WithDeliveryCharge(charge int64) Option {
	return func(s *Server) { s.charge = charge }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:  st,
		charge: services.DefaultDeliveryCharge,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(s.logger))
	r.Use(CORSMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.health)

		r.Route("/menu", func(r chi.Router) {
			r.Get("/categories", s.menuCategories)
			r.Get("/items", s.menuItems)
			r.Get("/item/{itemID}", s.menuItem)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.createOrder)
			r.Get("/", s.listOrders)
			r.Get("/{orderID}", s.getOrder)
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", s.listReviews)
			r.Post("/", s.createReview)
		})
		r.Route("/contact", func(r chi.Router) {
			r.Post("/", s.createContact)
			r.Get("/messages", s.listContacts)
		})
		r.Get("/restaurant/info", s.restaurantInfo)
	})
	return r
}
