package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	customerctrl "orderdesk/internal/customer/controller"
	dedupctrl "orderdesk/internal/dedup/controller"
	orderctrl "orderdesk/internal/order/controller"
)

func NewRouter(
	orders *orderctrl.OrderController,
	customers *customerctrl.CustomerController,
	dedup *dedupctrl.DedupController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orders.Create)
			r.Get("/", orders.List)
			r.Get("/{orderId}", orders.Get)
			r.Patch("/{orderId}/status", orders.UpdateStatus)
			r.Delete("/{orderId}", orders.Delete)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customers.List)
			r.Get("/{customerId}", customers.Get)
			r.Patch("/{customerId}", customers.Update)

			r.Route("/duplicates", func(r chi.Router) {
				r.Post("/detect", dedup.Detect)
				r.Post("/commit", dedup.Commit)
			})
		})
	})

	logger.Info("router configured")
	return r
}
