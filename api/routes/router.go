package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dookiees/bakery-backend/api/controllers"
	"github.com/dookiees/bakery-backend/api/middleware"
	"github.com/dookiees/bakery-backend/internal/catalog"
	checkoutsvc "github.com/dookiees/bakery-backend/internal/checkout"
	"github.com/dookiees/bakery-backend/internal/customers"
	"github.com/dookiees/bakery-backend/internal/orders"
	"github.com/dookiees/bakery-backend/internal/reviews"
	"github.com/dookiees/bakery-backend/internal/settings"
	"github.com/dookiees/bakery-backend/pkg/config"
	"github.com/dookiees/bakery-backend/pkg/db"
	"github.com/dookiees/bakery-backend/pkg/logger"
	"github.com/dookiees/bakery-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	checkoutService checkoutsvc.Service,
	reviewsService reviews.Service,
	ordersService orders.Service,
	customersService customers.Service,
	settingsService settings.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/products/{slug}", controllers.GetProductBySlug(catalogService, logg))
		r.Get("/featured", controllers.ListFeatured(catalogService, logg))
		r.Get("/reviews", controllers.ListReviews(reviewsService, logg))

		r.With(middleware.Idempotency(redisClient, logg)).
			Post("/checkout", controllers.Checkout(checkoutService, logg))

		r.Route("/admin/v1", func(r chi.Router) {
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(ordersService, logg))
				r.Get("/{orderId}", controllers.AdminGetOrder(ordersService, logg))
				r.Post("/{orderId}/status", controllers.AdminUpdateOrderStatus(ordersService, logg))
			})
			r.Get("/customers", controllers.AdminListCustomers(customersService, logg))
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.AdminGetSettings(settingsService, logg))
				r.Put("/", controllers.AdminUpdateSettings(settingsService, logg))
			})
		})
	})

	return r
}
