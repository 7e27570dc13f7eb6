package http

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Services struct {
	Reservations ReservationCreator
	Payments     PaymentRecorder
	Fulfillment  Fulfiller
	Calendar     DateBlocker
	Catalog      Catalog
	Dashboard    Dashboard
}

// NewRouter wires every handler, the request logger and CORS into one mux.
func NewRouter(svcs Services, corsOrigins []string, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", HealthHandler)

	r.Post("/clients", HandleRegisterClient(svcs.Catalog))
	r.Get("/clients", HandleListClients(svcs.Catalog))

	r.Post("/items", HandleCreateItem(svcs.Catalog))
	r.Get("/items", HandleListItems(svcs.Catalog))
	r.Get("/items/{itemID}", HandleGetItem(svcs.Catalog))
	r.Post("/items/{itemID}/quantity", HandleAdjustQuantity(svcs.Catalog))

	r.Post("/reservations", HandleCreateReservation(svcs.Reservations))
	r.Post("/events/{eventID}/payments", HandleRecordPayment(svcs.Payments))
	r.Post("/events/{eventID}/fulfill", HandleMarkFulfilled(svcs.Fulfillment))

	r.Post("/calendar/blocks", HandleBlockDate(svcs.Calendar))
	r.Delete("/calendar/blocks/{date}", HandleUnblockDate(svcs.Calendar))

	r.Get("/admin/stats", HandleStats(svcs.Dashboard))
	r.Get("/admin/revenue", HandleMonthlyRevenue(svcs.Dashboard))
	r.Get("/admin/low-stock", HandleLowStock(svcs.Dashboard))

	r.NotFound(NotFoundHandler().ServeHTTP)

	return RequestLogger(r, logger)
}
