package di

import (
	"context"
	"net/http"

	"scholargraph/application/commands/bus"
	"scholargraph/application/ports"
	querybus "scholargraph/application/queries/bus"
	"scholargraph/application/services"
	"scholargraph/infrastructure/config"
	"scholargraph/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Collector
	Tracer     *observability.Tracer
	EventBus   ports.EventBus
	Catalog    *services.CatalogService
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Router     http.Handler
}

// Shutdown flushes the tracer and the logger
func (c *Container) Shutdown(ctx context.Context) error {
	err := c.Tracer.Shutdown(ctx)
	// Sync on a terminal stderr returns ENOTTY
	_ = c.Logger.Sync()
	return err
}
