package wire

import (
	"net/http"

	"fairshare-booking/internal/adaptor"
	"fairshare-booking/internal/data/repository"
	"fairshare-booking/internal/gateway"
	"fairshare-booking/internal/usecase"
	"fairshare-booking/pkg/cache"
	"fairshare-booking/pkg/middleware"
	"fairshare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router *chi.Mux
	Cache  *cache.Cache
}

// Wiring initializes gateways, services, handlers and routes.
func Wiring(repo *repository.Repository, tx repository.TxRunner, config *utils.Config, logger *zap.Logger) (*App, error) {
	store := cache.New(config.Redis, logger)

	sync := gateway.NewReservationClient(config.Sync, logger)

	var notifier usecase.NotificationSender
	mailer, err := gateway.NewMailer(config.Email, logger)
	if err != nil {
		return nil, err
	}
	if mailer != nil {
		notifier = mailer
	}

	service := usecase.NewService(repo, tx, store, sync, notifier, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
		Cache:  store,
	}, nil
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireBooking(r, handler.Booking, repo, logger)
	wireEntitlement(r, handler.Entitlement, repo, logger)
	wireProperty(r, handler.Property, repo, logger)
	wireSession(r, handler.Session, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
