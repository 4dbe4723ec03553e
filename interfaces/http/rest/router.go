package rest

import (
	"net/http"

	"scholargraph/application/commands/bus"
	querybus "scholargraph/application/queries/bus"
	"scholargraph/interfaces/http/rest/handlers"
	"scholargraph/interfaces/http/rest/middleware"
	pkgerrors "scholargraph/pkg/errors"
	"scholargraph/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// APIVersion is the current REST API version
const APIVersion = "v1"

// Options configures the HTTP surface
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
	EnableMetrics  bool
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	metrics    *observability.Collector
	errors     *pkgerrors.ErrorHandler
	opts       Options
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	metrics *observability.Collector,
	errors *pkgerrors.ErrorHandler,
	opts Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		metrics:    metrics,
		errors:     errors,
		opts:       opts,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errors.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.opts.EnableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}
	router.Use(versionMiddleware)

	if rt.opts.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.opts.EnableMetrics {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	affiliationHandler := handlers.NewAffiliationHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
	publicationHandler := handlers.NewPublicationHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
	connectivityHandler := handlers.NewConnectivityHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)

	router.Route("/api/"+APIVersion, func(r chi.Router) {
		r.Route("/affiliations", func(r chi.Router) {
			r.Post("/", affiliationHandler.CreateAffiliation)
			r.Get("/", affiliationHandler.ListAffiliations)
			r.Get("/at", affiliationHandler.FindAffiliationAt)
			r.Get("/nearest", affiliationHandler.NearestAffiliations)
			r.Get("/{id}", affiliationHandler.GetAffiliation)
			r.Delete("/{id}", affiliationHandler.DeleteAffiliation)
			r.Put("/{id}/coord", affiliationHandler.MoveAffiliation)
			r.Get("/{id}/publications", affiliationHandler.AffiliationPublications)
			r.Get("/{id}/connections", affiliationHandler.AffiliationConnections)
		})

		r.Route("/publications", func(r chi.Router) {
			r.Post("/", publicationHandler.CreatePublication)
			r.Get("/", publicationHandler.ListPublications)
			r.Get("/common-parent", publicationHandler.CommonParent)
			r.Get("/{id}", publicationHandler.GetPublication)
			r.Delete("/{id}", publicationHandler.DeletePublication)
			r.Post("/{id}/affiliations", publicationHandler.LinkAffiliation)
			r.Put("/{id}/parent", publicationHandler.SetParent)
			r.Get("/{id}/references", publicationHandler.References)
		})

		r.Get("/connections", connectivityHandler.ListConnections)
		r.Get("/paths/{kind}", connectivityHandler.FindPath)
		r.Get("/stats", connectivityHandler.Stats)
		r.Delete("/catalog", connectivityHandler.ClearCatalog)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests. The catalog lives in
// memory, so the service is ready once it serves requests.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

// versionMiddleware adds API version headers to all responses
func versionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-API-Version", APIVersion)
		w.Header().Set("X-API-Latest", APIVersion)
		next.ServeHTTP(w, r)
	})
}
