package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	custommiddleware "github.com/mmeshcher/carrental-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса проката.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.RateLimiter(h.rateLimit))
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/fleet", h.GetFleet)
		r.Post("/customers", h.RegisterCustomer)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Get("/customers/me", h.GetCustomer)

			r.Post("/rentals", h.Rent)
			r.Get("/rentals", h.GetRentals)
			r.Get("/rentals/current", h.GetCurrentRental)
			r.Post("/rentals/return", h.Return)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
