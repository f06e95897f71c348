package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"graphstore/application/commands/bus"
	querybus "graphstore/application/queries/bus"
	"graphstore/infrastructure/config"
	"graphstore/interfaces/http/rest/handlers"
	"graphstore/interfaces/http/rest/middleware"
	"graphstore/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	metrics    *observability.Metrics
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	if rt.cfg.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(rt.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.cfg.JWTSecret, rt.cfg.JWTIssuer))

		nodeHandler := handlers.NewNodeHandler(rt.commandBus, rt.logger)
		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", nodeHandler.AddNodes)
			r.Patch("/", nodeHandler.UpdateNodes)
			r.Delete("/", nodeHandler.DeleteNodes)
		})

		edgeHandler := handlers.NewEdgeHandler(rt.commandBus, rt.queryBus, rt.logger)
		r.Route("/edges", func(r chi.Router) {
			r.Get("/", edgeHandler.GetEdges)
			r.Post("/", edgeHandler.AddEdges)
			r.Patch("/", edgeHandler.UpdateEdges)
			r.Delete("/", edgeHandler.DeleteEdges)
		})

		metadataHandler := handlers.NewMetadataHandler(rt.commandBus, rt.logger)
		r.Route("/metadata", func(r chi.Router) {
			r.Post("/", metadataHandler.AddMetadata)
			r.Delete("/", metadataHandler.DeleteMetadata)
		})

		graphHandler := handlers.NewGraphHandler(rt.queryBus, rt.logger)
		r.Get("/graph", graphHandler.ReadGraph)
		r.Get("/search", graphHandler.SearchNodes)
		r.Post("/open", graphHandler.OpenNodes)

		txHandler := handlers.NewTransactionHandler(rt.commandBus, rt.queryBus, rt.logger)
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/begin", txHandler.Begin)
			r.Post("/commit", txHandler.Commit)
			r.Post("/rollback", txHandler.Rollback)
			r.Get("/status", txHandler.Status)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
