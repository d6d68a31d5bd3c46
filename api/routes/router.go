package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendhub/vendhub-backend/api/controllers"
	"github.com/vendhub/vendhub-backend/api/middleware"
	"github.com/vendhub/vendhub-backend/internal/imports"
	"github.com/vendhub/vendhub-backend/internal/inventory"
	"github.com/vendhub/vendhub-backend/internal/locations"
	"github.com/vendhub/vendhub-backend/internal/products"
	"github.com/vendhub/vendhub-backend/internal/sales"
	"github.com/vendhub/vendhub-backend/pkg/config"
	"github.com/vendhub/vendhub-backend/pkg/db"
	"github.com/vendhub/vendhub-backend/pkg/logger"
	"github.com/vendhub/vendhub-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	metricsHandler http.Handler,
	importService imports.Service,
	locationService locations.Service,
	productService products.Service,
	inventoryService inventory.Service,
	salesService sales.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	uploadPolicy := middleware.NewUploadRateLimitPolicy(
		"uploads",
		cfg.Ingest.UploadRateWindow,
		cfg.Ingest.UploadRateLimit,
	)

	readyChecks := []controllers.ReadyCheck{}
	if dbP != nil {
		readyChecks = append(readyChecks, controllers.ReadyCheck{Name: "postgres", Ping: dbP.Ping})
	}
	if redisClient != nil {
		readyChecks = append(readyChecks, controllers.ReadyCheck{Name: "redis", Ping: redisClient.Ping})
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyChecks...))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/imports", func(r chi.Router) {
			// Replay protection and throttling guard the upload only;
			// history reads stay cheap.
			r.With(
				middleware.UploadRateLimit(uploadPolicy, redisClient, logg),
				middleware.Idempotency(redisClient, cfg.Ingest.IdempotencyTTL, logg),
			).Post("/", controllers.CreateImport(importService, cfg.Ingest.MaxUploadBytes, logg))
			r.Get("/", controllers.ListImports(importService, logg))
			r.Get("/{importId}", controllers.GetImport(importService, logg))
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", controllers.ListLocations(locationService, logg))
			r.Get("/{locationId}", controllers.GetLocation(locationService, logg))
			r.Get("/{locationId}/sales", controllers.LocationSales(salesService, logg))
			r.Put("/{locationId}/inventory/{productId}", controllers.EditInventory(inventoryService, logg))
		})

		r.Get("/products", controllers.ListProducts(productService, logg))
	})

	return r
}
