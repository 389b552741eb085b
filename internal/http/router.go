package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/advisordesk/advisordesk/internal/http/asset"
	"github.com/advisordesk/advisordesk/internal/http/lead"
	"github.com/advisordesk/advisordesk/internal/http/market"
	"github.com/advisordesk/advisordesk/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	assetsV1 *asset.Handler,
	leadsV1 *lead.Handler,
	marketV1 *market.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", transactionsV1.Routes)
		r.Route("/assets", assetsV1.Routes)
		r.Route("/leads", leadsV1.Routes)
		r.Route("/market-summary", marketV1.Routes)
	})

	return router
}
