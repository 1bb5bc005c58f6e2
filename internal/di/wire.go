//go:build wireinject
// +build wireinject

package di

import (
	"SpacWatch/pkg/config"
	"SpacWatch/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Gateway client and orchestration
		ProvideGateway,
		ProvideOrchestrator,
		ProvideAlertSink,
		ProvideExporter,

		// Delivery
		ProvideDashboardHandler,
		ProvideHub,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
