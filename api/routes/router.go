package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mazadcars/mazad-backend/api/controllers"
	"github.com/mazadcars/mazad-backend/api/middleware"
	"github.com/mazadcars/mazad-backend/internal/auctions"
	"github.com/mazadcars/mazad-backend/internal/catalogs"
	"github.com/mazadcars/mazad-backend/internal/scheduler"
	"github.com/mazadcars/mazad-backend/internal/users"
	"github.com/mazadcars/mazad-backend/internal/vehicles"
	"github.com/mazadcars/mazad-backend/pkg/config"
	"github.com/mazadcars/mazad-backend/pkg/db"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	"github.com/mazadcars/mazad-backend/pkg/logger"
	pkgredis "github.com/mazadcars/mazad-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	auctionService auctions.Service,
	catalogService catalogs.Service,
	vehicleService vehicles.Service,
	userService users.Service,
	sweepJob *scheduler.LifecycleSweepJob,
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

	// Read-only listings stay open so prospective bidders can browse.
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/auctions", controllers.ListAuctions(auctionService, logg))
		r.Get("/auctions/{auctionId}", controllers.GetAuction(auctionService, logg))
		r.Get("/auctions/{auctionId}/bids", controllers.ListAuctionBids(auctionService, logg))
		r.Get("/catalogs", controllers.ListCatalogs(catalogService, logg))
		r.Get("/catalogs/{catalogId}", controllers.GetCatalog(catalogService, logg))
		r.Get("/catalogs/lots/{lotId}/bids", controllers.ListLotBids(catalogService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/me/tier", controllers.MyTier(userService, logg))
		r.Post("/auctions/{auctionId}/bids", controllers.PlaceAuctionBid(auctionService, logg))
		r.Post("/auctions/{auctionId}/entry", controllers.PayAuctionEntry(auctionService, logg))
		r.Post("/catalogs/lots/{lotId}/bids", controllers.PlaceLotBid(catalogService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.RoleOperator), logg))

		r.Post("/vehicles", controllers.CreateVehicle(vehicleService, logg))
		r.Get("/vehicles/{vehicleId}", controllers.GetVehicle(vehicleService, logg))

		r.Route("/auctions", func(r chi.Router) {
			r.Post("/", controllers.CreateAuction(auctionService, logg))
			r.Post("/{auctionId}/status", controllers.SetAuctionStatus(auctionService, logg))
			r.Post("/{auctionId}/extend", controllers.ExtendAuction(auctionService, logg))
		})

		r.Route("/catalogs", func(r chi.Router) {
			r.Post("/", controllers.CreateCatalog(catalogService, logg))
			r.Post("/{catalogId}/start", controllers.StartCatalog(catalogService, logg))
			r.Post("/{catalogId}/advance", controllers.AdvanceCatalogLot(catalogService, logg))
			r.Post("/{catalogId}/extend", controllers.ExtendCatalogLot(catalogService, logg))
		})

		r.Post("/scheduler/sweep", controllers.TriggerSweep(sweepJob, logg))
	})

	return r
}
