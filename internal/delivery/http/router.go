package http

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
)

// RouterDeps carries everything the router wires into the mux.
type RouterDeps struct {
	Logger            *slog.Logger
	EventController   *controllers.EventController
	BookingController *controllers.BookingController
	HealthController  *controllers.HealthController
	Registry          *prometheus.Registry
	AllowedOrigins    []string
}

// NewRouter initializes the HTTP router with all application routes and the middleware
// chain: panic recovery, request IDs, access logging, metrics, CORS.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", deps.EventController.CreateEvent)
	mux.HandleFunc("GET /events", deps.EventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", deps.EventController.GetEventByID)
	mux.HandleFunc("GET /slugs/{slug}", deps.EventController.GetEventBySlug)
	mux.HandleFunc("PATCH /events/{eventID}", deps.EventController.UpdateEvent)
	mux.HandleFunc("GET /events/{eventID}/bookings", deps.BookingController.ListEventBookings)

	// Bookings
	mux.HandleFunc("POST /bookings", deps.BookingController.CreateBooking)
	mux.HandleFunc("GET /bookings/{bookingID}", deps.BookingController.GetBookingByID)
	mux.HandleFunc("PATCH /bookings/{bookingID}", deps.BookingController.UpdateBooking)

	// Ops
	mux.HandleFunc("GET /health", deps.HealthController.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry}))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = middleware.CORS(deps.AllowedOrigins, h)
	h = middleware.MetricsMiddleware(middleware.NewHTTPMetrics(deps.Registry), h)
	h = middleware.LoggingMiddleware(deps.Logger, h)
	h = chimiddleware.RequestID(h)
	h = chimiddleware.Recoverer(h)
	return h
}
