package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/watoukuang/demochain/config"
	"github.com/watoukuang/demochain/internal/clock"
	"github.com/watoukuang/demochain/internal/db"
	"github.com/watoukuang/demochain/internal/handlers"
	"github.com/watoukuang/demochain/internal/middleware"
	"github.com/watoukuang/demochain/internal/payments"
	"github.com/watoukuang/demochain/logging"
	"net/http"
)

func main() {
	logger := logging.GetSugaredLogger()
	defer logger.Sync()

	cfg := config.GetConfig()

	database, err := db.NewManager(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer database.Close()

	store := payments.NewStore()
	hub := payments.NewHub()
	defer hub.Close()

	engine := payments.NewEngine(
		store,
		hub,
		clock.NewSystem(),
		payments.DelayPolicy{Delay: cfg.ConfirmationDelay},
		logger,
		payments.WithOrderTTL(cfg.OrderTTL),
	)

	h := handlers.Handler{
		Config:   cfg,
		Database: database,
		Logger:   logger,
		Payments: engine,
	}

	r := initRouter(h)

	err = http.ListenAndServe(cfg.RunAddress, r)
	logger.Fatalw("failed to start server", "error", err)
}

func initRouter(h handlers.Handler) http.Handler {
	r := chi.NewRouter()
	r.Post(`/api/auth/register`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.Register),
				h.Logger,
				middleware.RequestLogger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
			).ServeHTTP(w, r)
		},
	)
	r.Post(`/api/auth/login`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.Login),
				h.Logger,
				middleware.RequestLogger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
			).ServeHTTP(w, r)
		},
	)
	r.Get(`/api/article/page`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.ArticlesPage),
				h.Logger,
				middleware.RequestLogger,
				middleware.WriteWithCompression,
			).ServeHTTP(w, r)
		},
	)
	r.Get(`/api/article/{slug}`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.Article),
				h.Logger,
				middleware.RequestLogger,
				middleware.WriteWithCompression,
			).ServeHTTP(w, r)
		},
	)
	r.Post(`/api/payment`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.CreateOrder),
				h.Logger,
				middleware.RequestLogger,
				middleware.WriteWithCompression,
				middleware.ReadWithCompression,
				middleware.ValidateAuth,
			).ServeHTTP(w, r)
		},
	)
	r.Get(`/api/payment/{id}`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.OrderStatus),
				h.Logger,
				middleware.RequestLogger,
				middleware.WriteWithCompression,
			).ServeHTTP(w, r)
		},
	)
	r.Get(`/api/payment/{id}/events`,
		func(w http.ResponseWriter, r *http.Request) {
			middleware.Conveyor(
				http.HandlerFunc(h.OrderEvents),
				h.Logger,
				middleware.RequestLogger,
			).ServeHTTP(w, r)
		},
	)
	// CORS wraps the whole router so browser preflight OPTIONS requests
	// are answered before method routing can reject them.
	return middleware.CORS(r, h.Logger)
}
