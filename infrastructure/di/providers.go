package di

import (
	"context"
	"fmt"
	"net/http"

	"scholargraph/application/commands/bus"
	commandhandlers "scholargraph/application/commands/handlers"
	"scholargraph/application/ports"
	querybus "scholargraph/application/queries/bus"
	queryhandlers "scholargraph/application/queries/handlers"
	"scholargraph/application/services"
	domainconfig "scholargraph/domain/config"
	"scholargraph/domain/core/aggregates"
	"scholargraph/infrastructure/config"
	messaging "scholargraph/infrastructure/messaging/memory"
	"scholargraph/infrastructure/persistence/memory"
	"scholargraph/interfaces/http/rest"
	pkgerrors "scholargraph/pkg/errors"
	"scholargraph/pkg/observability"

	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}

	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("environment", cfg.Environment)), nil
}

// ProvideDomainConfig returns the business limits for the environment
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	return cfg.DomainRules()
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.Metrics.Namespace)
}

// ProvideTracer creates the OpenTelemetry tracer
func ProvideTracer(ctx context.Context, cfg *config.Config) (*observability.Tracer, error) {
	return observability.NewTracer(ctx, observability.TracingConfig{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Tracing.ServiceName,
		Environment:  cfg.Environment,
		Exporter:     cfg.Tracing.Exporter,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
}

// ProvideAffiliationRepository creates the affiliation store
func ProvideAffiliationRepository(rules *domainconfig.DomainConfig) ports.AffiliationRepository {
	return memory.NewAffiliationRepository(rules.MaxAffiliations)
}

// ProvidePublicationRepository creates the publication store
func ProvidePublicationRepository(rules *domainconfig.DomainConfig) ports.PublicationRepository {
	return memory.NewPublicationRepository(rules.MaxPublications)
}

// ProvideConnectivityIndex creates the empty co-authorship index
func ProvideConnectivityIndex() *aggregates.ConnectivityIndex {
	return aggregates.NewConnectivityIndex()
}

// ProvideEventBus creates the in-process event bus and subscribes the
// projector that maintains the index and the metrics handler
func ProvideEventBus(
	index *aggregates.ConnectivityIndex,
	metrics *observability.Collector,
	logger *zap.Logger,
) (ports.EventBus, error) {
	eventBus := messaging.NewEventBus(logger)
	projector := services.NewConnectivityProjector(index, eventBus, logger)
	metricsHandler := services.NewMetricsHandler(metrics, index)

	if err := services.RegisterHandlers(eventBus, projector, metricsHandler); err != nil {
		return nil, fmt.Errorf("failed to subscribe event handlers: %w", err)
	}
	return eventBus, nil
}

// ProvideCatalogService creates the catalog service
func ProvideCatalogService(
	affiliations ports.AffiliationRepository,
	publications ports.PublicationRepository,
	index *aggregates.ConnectivityIndex,
	eventBus ports.EventBus,
	rules *domainconfig.DomainConfig,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *services.CatalogService {
	return services.NewCatalogService(affiliations, publications, index, eventBus, rules, metrics, tracer, logger)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	catalog *services.CatalogService,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
	)
	if err := commandhandlers.RegisterAll(commandBus, catalog); err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	catalog *services.CatalogService,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.NewLoggingMiddleware(logger),
		querybus.NewMetricsMiddleware(metrics),
	)
	if err := queryhandlers.RegisterAll(queryBus, catalog); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}
	return queryBus, nil
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.Logging.Debug)
}

// ProvideRouter builds the HTTP handler
func ProvideRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	metrics *observability.Collector,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(commandBus, queryBus, metrics, errorHandler, rest.Options{
		EnableCORS:     cfg.Server.EnableCORS,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		EnableMetrics:  cfg.Metrics.Enabled,
	}, logger).Setup()
}
